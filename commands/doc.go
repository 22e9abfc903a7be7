// Package commands provides typed command groups over a NetworkHD control
// session. Each group covers one domain of the unit's API surface (matrix
// switching, video walls, multiview, device control, queries) and builds
// the exact command line the unit expects, then validates the response
// against that command family's success convention: setters expect the unit
// to mirror the command back, scene and window operations expect a
// "success"/"failure" indicator, and reboot/restore expect a confirmation
// phrase.
//
// Groups operate over the small Sender interface, satisfied by
// *client.Client. The API struct aggregates every group on one session:
//
//	api, err := commands.NewAPI(c)
//	if err != nil { ... }
//	ver, err := api.Query.Version(ctx)
//	err = api.MatrixSwitch.Set(ctx, "TX1", "RX1", "RX2")
package commands
