package commands

import (
	"context"
	"fmt"
	"strings"

	nherrors "github.com/c360/networkhd/errors"
)

// WindowLayer selects a window stacking move for windowing scenes.
type WindowLayer string

const (
	LayerUp     WindowLayer = "up"
	LayerDown   WindowLayer = "down"
	LayerTop    WindowLayer = "top"
	LayerBottom WindowLayer = "bottom"
)

// VideoWallCommands drives video walls: activating scenes, reassigning
// sources within a scene, and opening, moving and closing windows in
// windowing scenes. Scenes and windowing scenes are addressed as
// videowall-scene pairs.
type VideoWallCommands struct {
	s Sender
}

// SceneActive activates a video wall scene.
func (c *VideoWallCommands) SceneActive(ctx context.Context, videowall, scene string) error {
	key := videowall + "-" + scene
	return sendIndicated(ctx, c.s, "scene active "+key, "scene "+key+" active")
}

// SceneSet reassigns the source of one physical screen within a scene.
// The unit confirms with a fixed phrase rather than a success token; the
// return reports whether the confirmation arrived.
func (c *VideoWallCommands) SceneSet(ctx context.Context, videowall, scene string, x, y int, tx string) (bool, error) {
	key := videowall + "-" + scene
	command := fmt.Sprintf("scene set %s %d %d %s", key, x, y, tx)
	resp, err := send(ctx, c.s, command)
	if err != nil {
		return false, err
	}
	confirmation := fmt.Sprintf("scene %s's source in [%d,%d] change to %s", key, x, y, tx)
	return strings.TrimSpace(resp) == confirmation, nil
}

// ScreenChange reassigns the source of a logical screen within a scene.
// The return reports whether the unit's confirmation phrase arrived.
func (c *VideoWallCommands) ScreenChange(ctx context.Context, videowall, scene, screen, tx string) (bool, error) {
	target := videowall + "-" + scene + "_" + screen
	resp, err := send(ctx, c.s, fmt.Sprintf("vw change %s %s", target, tx))
	if err != nil {
		return false, err
	}
	confirmation := fmt.Sprintf("videowall change %s tx connect to %s", target, tx)
	return strings.TrimSpace(resp) == confirmation, nil
}

// WindowSceneActive activates a windowing scene.
func (c *VideoWallCommands) WindowSceneActive(ctx context.Context, videowall, wscene string) error {
	key := videowall + "-" + wscene
	command := "wscene2 active " + key
	return sendIndicated(ctx, c.s, command, command)
}

// WindowOpen opens a window in a windowing scene at grid position x,y
// spanning h columns and v rows, fed by tx.
func (c *VideoWallCommands) WindowOpen(ctx context.Context, videowall, wscene, window string, x, y, h, v int, tx string) error {
	command := fmt.Sprintf("wscene2 window open %s-%s %s %d %d %d %d %s", videowall, wscene, window, x, y, h, v, tx)
	return sendIndicated(ctx, c.s, command, command)
}

// WindowClose closes a window in a windowing scene.
func (c *VideoWallCommands) WindowClose(ctx context.Context, videowall, wscene, window string) error {
	command := fmt.Sprintf("wscene2 window close %s-%s %s", videowall, wscene, window)
	return sendIndicated(ctx, c.s, command, command)
}

// WindowChange switches the source feeding a window.
func (c *VideoWallCommands) WindowChange(ctx context.Context, videowall, wscene, window, tx string) error {
	command := fmt.Sprintf("wscene2 window change %s-%s %s %s", videowall, wscene, window, tx)
	return sendIndicated(ctx, c.s, command, command)
}

// WindowAdjust repositions and resizes a window within the scene grid.
func (c *VideoWallCommands) WindowAdjust(ctx context.Context, videowall, wscene, window string, x, y, h, v int) error {
	command := fmt.Sprintf("wscene2 window adjust %s-%s %s %d %d %d %d", videowall, wscene, window, x, y, h, v)
	return sendIndicated(ctx, c.s, command, command)
}

// WindowMove changes a window's stacking order.
func (c *VideoWallCommands) WindowMove(ctx context.Context, videowall, wscene, window string, layer WindowLayer) error {
	switch layer {
	case LayerUp, LayerDown, LayerTop, LayerBottom:
	default:
		return nherrors.WrapInvalid(nherrors.ErrInvalidConfig, "commands", "WindowMove",
			fmt.Sprintf("unknown window layer %q", layer))
	}
	command := fmt.Sprintf("wscene2 window move %s-%s %s %s", videowall, wscene, window, layer)
	return sendIndicated(ctx, c.s, command, command)
}
