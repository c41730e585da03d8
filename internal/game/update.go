package game

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/comfy-wars/internal/core"
)

// Draw layers, bottom to top.
const (
	zGround  = 0
	zTerrain = 1
	zRange   = 2
	zActors  = 3
	zPath    = 4
	zCursor  = 5
	zHUD     = 10
)

// HUDSize is the text size of the status line.
const HUDSize = 16

var (
	rangeColor = core.Blue.WithAlpha(0.35)
	movedColor = core.Gray.WithAlpha(0.5)
)

// Frame runs one frame of the game: tasks first, then input, then drawing.
func Frame(ctx core.Context, s *PersistentState, f *FleetingState) {
	f.Queue.RunUntilStall(s)

	if !f.textureTried {
		f.textureTried = true
		ensureTexture(ctx, s)
	}

	pointer := core.WorldToGame(ctx.PointerWorld())
	plan := handleInput(ctx, s, f, pointer)
	draw(ctx, s, plan, pointer)
}

func ensureTexture(ctx core.Context, s *PersistentState) {
	if _, _, ok := ctx.TextureDimensions(TextureName); ok {
		return
	}
	if err := ctx.LoadTexture(TextureName, s.AtlasPath); err != nil {
		log.Error("failed to load texture", "name", TextureName, "path", s.AtlasPath, "err", err)
	}
}

func cancelPressed(ctx core.Input) bool {
	return ctx.IsPressed(core.MouseRight) || ctx.IsPressed(core.ButtonCancel)
}

// handleInput advances the selection state machine and returns the move
// plan of the selected unit, if any.
func handleInput(ctx core.Input, s *PersistentState, f *FleetingState, pointer core.Pos) *MovePlan {
	sel := s.Selection
	if ctx.IsPressed(core.ButtonEndTurn) && (sel.State == SelectNone || sel.State == Selected) {
		s.EndTurn()
		return nil
	}

	switch sel.State {
	case Selected:
		if cancelPressed(ctx) {
			s.Selection = Selection{}
			return nil
		}
		plan, ok := PlanMove(s, sel.Key, pointer)
		if !ok {
			s.Selection = Selection{}
			return nil
		}
		if ctx.IsPressed(core.MouseLeft) {
			if k, ok := s.selectable(pointer); ok && k != sel.Key {
				s.Selection = SelectionOf(Selected, k)
				return nil
			}
			if _, ok := plan.Dest(); ok {
				f.Queue.Queue(NewMoveTask(sel.Key, plan.Path))
				s.Selection = SelectionOf(Moving, sel.Key)
				return nil
			}
		}
		return &plan

	case Moving:
		// The move task hands over to Confirm. Without a task, for
		// instance after a reload by a unit that cannot drain, do it here.
		if !s.Actors.Contains(sel.Key) {
			s.Selection = Selection{}
		} else if f.Queue.Len() == 0 {
			s.Selection = SelectionOf(Confirm, sel.Key)
		}

	case Confirm:
		a, ok := s.Actors.Get(sel.Key)
		if !ok {
			s.Selection = Selection{}
			return nil
		}
		if ctx.IsPressed(core.ButtonConfirm) || ctx.IsPressed(core.MouseLeft) {
			a.HasMoved = true
			s.Selection = Selection{}
		}

	default:
		// SelectNone, or a state an older or newer build left behind.
		s.Selection = Selection{}
		if ctx.IsPressed(core.MouseLeft) {
			if k, ok := s.selectable(pointer); ok {
				s.Selection = SelectionOf(Selected, k)
			}
		}
	}
	return nil
}

// selectable returns the actor at p if it may move this turn.
func (s *PersistentState) selectable(p core.Pos) (ActorKey, bool) {
	k, a, ok := s.ActorAt(p)
	if !ok || a.Team != s.Turn || a.HasMoved {
		return ActorKey{}, false
	}
	return k, true
}

func draw(ctx core.Renderer, s *PersistentState, plan *MovePlan, pointer core.Pos) {
	for _, t := range s.GroundTiles {
		ctx.DrawTextureRegion(TextureName, t.Src, t.Pos.X, t.Pos.Y, zGround)
	}
	for _, t := range s.TerrainTiles {
		ctx.DrawTextureRegion(TextureName, t.Src, t.Pos.X, t.Pos.Y, zTerrain)
	}

	if plan != nil {
		for y := 0; y < plan.Range.H; y++ {
			for x := 0; x < plan.Range.W; x++ {
				if p := core.P(x, y); plan.Reachable(p) {
					ctx.DrawRect(core.TileRect(p), rangeColor, zRange)
				}
			}
		}
		for _, ps := range PathSprites(plan.Path) {
			s.drawSprite(ctx, ps.Sprite, ps.Pos.World(), zPath)
		}
	}

	for _, a := range s.Actors.All() {
		s.drawSprite(ctx, a.Sprite, a.DrawPos, zActors)
		if a.HasMoved {
			ctx.DrawRect(core.NewRect(a.DrawPos.X, a.DrawPos.Y, core.TileSize, core.TileSize), movedColor, zActors)
		}
	}

	if s.InBounds(pointer) {
		s.drawSprite(ctx, "cursor", pointer.World(), zCursor)
	}

	hudY := float64(s.Ground.H*core.TileSize) + 4
	ctx.DrawText(s.Turn.String()+" turn: "+hint(s.Selection), HUDSize, 0, hudY, zHUD)
}

func (s *PersistentState) drawSprite(r core.Renderer, name string, at core.FPos, z int) {
	sp, ok := s.Sprites[name]
	if !ok {
		r.DrawText("?"+name, HUDSize, at.X, at.Y, z)
		return
	}
	sp.Draw(r, at.X, at.Y, z)
}

func hint(sel Selection) string {
	switch sel.State {
	case Selected:
		return "click a destination, right click to cancel"
	case Moving:
		return "moving"
	case Confirm:
		return "enter to confirm"
	default:
		return "click a unit, e to end turn"
	}
}
