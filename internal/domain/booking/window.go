package booking

import "time"

// Window は半開区間 [Start, End) の予約時間枠を表す
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow は時間枠を作成する
func NewWindow(start, end time.Time) (Window, error) {
	w := Window{Start: start, End: end}
	if err := w.Validate(); err != nil {
		return Window{}, err
	}
	return w, nil
}

// Validate は時間枠の検証を行う
func (w Window) Validate() error {
	if w.Start.IsZero() || w.End.IsZero() {
		return ErrWindowRequired
	}
	if !w.End.After(w.Start) {
		return ErrInvalidWindow
	}
	return nil
}

// Overlaps は2つの半開区間が重なるかを返す
// 境界が接するだけ（w.End == other.Start）の場合は重ならない
func (w Window) Overlaps(other Window) bool {
	return w.Start.Before(other.End) && w.End.After(other.Start)
}

// Duration は時間枠の長さを返す
func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}
