package app

// Observer receives cycle-level measurements. The metrics recorder
// satisfies it; nil observers are replaced with a no-op.
type Observer interface {
	ObservePost(phase string, nextCursor, total int, err error)
	ObserveStateFallback()
}

type nopObserver struct{}

func (nopObserver) ObservePost(string, int, int, error) {}
func (nopObserver) ObserveStateFallback()               {}
