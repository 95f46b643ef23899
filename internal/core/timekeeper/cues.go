package timekeeper

import "errors"

// CuePlayers plays a cue on every member and joins their errors.
type CuePlayers []CuePlayer

// Play forwards the cue to every non-nil member.
func (players CuePlayers) Play(cue Cue) error {
	var errs []error
	for _, player := range players {
		if player == nil {
			continue
		}
		if err := player.Play(cue); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
