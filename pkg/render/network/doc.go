// Package network renders a profile's follow network with Graphviz.
//
// The diagram puts the profile in the middle, followers on one side and
// followees on the other. Mutual follows are drawn as a single green
// two-headed edge.
//
//	dot := network.ToDOT(profile, followers, following, network.Options{Limit: 30})
//	svg, err := network.RenderSVG(ctx, dot)
package network
