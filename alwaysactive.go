package smartpoll

import "github.com/joeycumines/logiface"

// NewAlwaysActive constructs a Coordinator whose predicate returns true
// unconditionally, and whose periodic scheduler is never created (there is
// nothing to poll for). The unsampled→active transition still occurs on
// first observation: an active hook registered after that first observation
// fires immediately at registration time; one registered before fires on
// the first observation. Passive hooks on this variant are never invoked,
// since the predicate never returns false.
func NewAlwaysActive[E logiface.Event](config Config[E]) *Coordinator[E] {
	return newCoordinator[E](alwaysActivePredicate{}, config, "smartpoll.AlwaysActiveCoordinator", true)
}
