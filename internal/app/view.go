package app

import "mighty/internal/domain"

// View returns the table as seen from viewerSeat. Other seats' hands are
// reduced to their card counts and the kitty is only shown to the president
// while discarding. Pass domain.NoSeat for a spectator view.
func View(game *domain.Game, viewerSeat int) domain.GameState {
	st := game.State()
	for i := range st.Seats {
		if i != viewerSeat {
			st.Seats[i].Hand = nil
		}
	}
	if viewerSeat != st.President || st.Phase != domain.PhaseDiscarding {
		st.Kitty = nil
		st.Discarded = nil
	}
	return st
}
