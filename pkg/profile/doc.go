// Package profile holds the view state of a GitHub profile page and the
// controller that drives it.
//
// # State and events
//
// [State] is a plain value. Every change goes through the pure reducer
// [Reduce], which takes the current state and an [Event] and returns the
// next state without touching the original. Renderers (HTML, terminal,
// TUI) only ever read a State.
//
// # Controller
//
// [Controller] performs the fetches. Each panel belongs to a lane
// (profile, repos, followers, following). Starting a load stamps the lane
// with a new generation; when the response arrives it is applied only if
// the generation is still current, otherwise it is dropped and the
// operation returns [ErrStale]. Loading a profile bumps every lane, so a
// slow repository page from the previous user can never overwrite the new
// user's view.
//
//	ctl := profile.New(client, profile.WithLogger(logger))
//	if err := ctl.Search(ctx, "google"); err != nil {
//	    // state already shows the failed profile panel
//	}
//	st := ctl.State()
//	fmt.Println(st.Profile.Login, st.TotalPages())
//
// # Pagination
//
// [TotalPages] and [Links] compute the page strip. Forks are derived from
// the repositories of the current page only.
package profile
