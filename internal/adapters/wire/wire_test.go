package wire_test

import (
	"math"
	"testing"

	"github.com/okian/rcg/internal/adapters/wire"
	"github.com/okian/rcg/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestRecordSizes(t *testing.T) {
	convey.Convey("Record sizes follow the C structure layouts", t, func() {
		convey.So(wire.TeamSize, convey.ShouldEqual, 18)
		convey.So(wire.ShowInfoSize, convey.ShouldEqual, 316)
		convey.So(wire.MsgInfoSize, convey.ShouldEqual, 2050)
		convey.So(wire.DrawInfoSize, convey.ShouldEqual, 74)
		convey.So(wire.DispInfoSize, convey.ShouldEqual, 2052)
		convey.So(wire.ShortShowSize, convey.ShouldEqual, wire.BallSize+wire.PlayerSize*model.MaxPlayerTotal+4)
		convey.So(wire.PlayerTypeLayout.Size(), convey.ShouldEqual, 88)
		convey.So(wire.PlayerParamLayout.Size()%4, convey.ShouldEqual, 0)
		convey.So(wire.ServerParamLayout.Size()%4, convey.ShouldEqual, 0)
	})
}

func TestShowInfo(t *testing.T) {
	convey.Convey("Given a full show with teams and play mode", t, func() {
		show := model.NewShowInfo(1234)
		show.Ball.X, show.Ball.Y = -10.5, 3.25
		show.Players[0].State = model.StateStand | model.StateGoalie
		show.Players[0].X, show.Players[0].Y = -50, 0.0625
		show.Players[0].Body = -90
		show.Players[21].State = model.StateStand | model.StateKick
		show.Players[21].X = 20.125
		fs := wire.FullShow{
			PlayMode: model.PMPlayOn,
			Teams: model.Teams{
				Left:  model.TeamInfo{Name: "HELIOS", Score: 2},
				Right: model.TeamInfo{Name: "CYRUS", Score: 1},
			},
			Show: show,
		}

		convey.Convey("When encoding and decoding", func() {
			b := make([]byte, wire.ShowInfoSize)
			wire.EncodeShowInfo(b, fs)
			got := wire.DecodeShowInfo(b)

			convey.Convey("Then the representable fields round-trip", func() {
				convey.So(b[0], convey.ShouldEqual, byte(model.PMPlayOn))
				convey.So(got.PlayMode, convey.ShouldEqual, model.PMPlayOn)
				convey.So(got.Teams, convey.ShouldResemble, fs.Teams)
				convey.So(got.Show.Time, convey.ShouldEqual, 1234)
				convey.So(got.Show.Ball.X, convey.ShouldEqual, -10.5)
				convey.So(got.Show.Ball.HasVelocity, convey.ShouldBeFalse)
				convey.So(got.Show.Players[0].State, convey.ShouldEqual, model.StateStand|model.StateGoalie)
				convey.So(got.Show.Players[0].Y, convey.ShouldEqual, 0.0625)
				convey.So(got.Show.Players[0].Body, convey.ShouldEqual, -90.0)
				convey.So(got.Show.Players[21].X, convey.ShouldEqual, 20.125)
				convey.So(got.Show.Players[21].Side, convey.ShouldEqual, model.SideRight)
				convey.So(got.Show.Players[21].HasStamina, convey.ShouldBeFalse)
			})

			convey.Convey("Then re-encoding yields identical bytes", func() {
				again := make([]byte, wire.ShowInfoSize)
				wire.EncodeShowInfo(again, got)
				convey.So(again, convey.ShouldResemble, b)
			})
		})
	})
}

func TestShortShow(t *testing.T) {
	convey.Convey("Given a short show", t, func() {
		show := model.NewShowInfo(42)
		show.Ball = model.BallState{X: 1.5, Y: -2.25, VX: 0.5, VY: -0.125, HasVelocity: true}
		p := &show.Players[4]
		p.State = model.StateStand
		p.Type = 3
		p.X, p.Y, p.VX, p.VY, p.HasVelocity = -12.5, 7.75, 0.25, 0, true
		p.Body, p.Neck, p.ViewWidth, p.HighQuality = 45, -30, 90, true
		p.Stamina = model.Stamina{Stamina: 7500.5, Effort: 0.8, Recovery: 1, Capacity: -1}
		p.HasStamina = true
		p.Counters = model.Counters{Kick: 1, Dash: 20, Turn: 3, Say: 4, TurnNeck: 5, Catch: 6, Move: 7, ChangeView: 8}

		convey.Convey("When encoding and decoding", func() {
			b := make([]byte, wire.ShortShowSize)
			wire.EncodeShortShow(b, show)
			got := wire.DecodeShortShow(b)
			gp := got.Players[4]

			convey.Convey("Then values agree within the 32-bit resolution", func() {
				convey.So(got.Time, convey.ShouldEqual, 42)
				convey.So(got.Ball, convey.ShouldResemble, show.Ball)
				convey.So(gp.Type, convey.ShouldEqual, 3)
				convey.So(gp.X, convey.ShouldEqual, -12.5)
				convey.So(gp.Body, convey.ShouldAlmostEqual, 45, 0.001)
				convey.So(gp.Neck, convey.ShouldAlmostEqual, -30, 0.001)
				convey.So(gp.ViewWidth, convey.ShouldAlmostEqual, 90, 0.001)
				convey.So(gp.HighQuality, convey.ShouldBeTrue)
				convey.So(gp.Stamina.Stamina, convey.ShouldEqual, 7500.5)
				convey.So(math.Abs(gp.Stamina.Effort-0.8), convey.ShouldBeLessThan, 1.0/65536)
				convey.So(gp.Counters, convey.ShouldResemble, p.Counters)
			})

			convey.Convey("Then re-encoding yields identical bytes", func() {
				again := make([]byte, wire.ShortShowSize)
				wire.EncodeShortShow(again, got)
				convey.So(again, convey.ShouldResemble, b)
			})
		})

		convey.Convey("When a player has no stamina", func() {
			show.Players[5].HasStamina = false
			b := make([]byte, wire.ShortShowSize)
			wire.EncodeShortShow(b, show)
			got := wire.DecodeShortShow(b)

			convey.Convey("Then the default tuple is written", func() {
				convey.So(got.Players[5].Stamina, convey.ShouldResemble, model.DefaultStaminaValues())
			})
		})
	})
}

func TestMessages(t *testing.T) {
	convey.Convey("Given a v1 message record", t, func() {
		b := make([]byte, wire.MsgInfoSize)
		wire.EncodeMsgInfo(b, model.Message{Board: 1, Text: "hello"})

		convey.Convey("Then decoding trims at the first nul", func() {
			m := wire.DecodeMsgInfo(b)
			convey.So(m.Board, convey.ShouldEqual, 1)
			convey.So(m.Text, convey.ShouldEqual, "hello")
		})
	})

	convey.Convey("Given a v2 message body", t, func() {
		b := wire.AppendMessage(nil, model.Message{Board: 2, Text: "abc"})

		convey.Convey("Then the length counts the nul", func() {
			board, n := wire.DecodeMessageHeader(b)
			convey.So(board, convey.ShouldEqual, 2)
			convey.So(n, convey.ShouldEqual, 4)
			convey.So(len(b), convey.ShouldEqual, wire.MessageHeaderSize+4)
			convey.So(wire.DecodeMessageText(b[wire.MessageHeaderSize:]), convey.ShouldEqual, "abc")
		})

		convey.Convey("Then an interior nul ends the text", func() {
			convey.So(wire.DecodeMessageText([]byte("ab\x00cd\x00")), convey.ShouldEqual, "ab")
		})
	})

	convey.Convey("Team names longer than the field are truncated", t, func() {
		b := make([]byte, wire.TeamsSize)
		wire.EncodeTeams(b, model.Teams{Left: model.TeamInfo{Name: "AVeryLongTeamNameIndeed", Score: 3}})
		got := wire.DecodeTeams(b)
		convey.So(got.Left.Name, convey.ShouldEqual, "AVeryLongTeamNa")
		convey.So(got.Left.Score, convey.ShouldEqual, 3)
		convey.So(got.Right, convey.ShouldResemble, model.TeamInfo{})
	})
}

func TestParamLayouts(t *testing.T) {
	convey.Convey("Given parameter sets with non-default values", t, func() {
		sp := model.NewServerParam()
		sp.SetInt("half_time", 3000)
		sp.SetFloat("goal_width", 10.5)
		sp.SetBool("coach", true)
		sp.SetStr("team_l_start", "start.sh")

		pt := model.NewPlayerType()
		pt.SetInt("id", 7)
		pt.SetFloat("player_decay", 0.375)

		pp := model.NewPlayerParam()
		pp.SetInt("random_seed", 123456789)

		convey.Convey("When encoding and decoding server params", func() {
			b := make([]byte, wire.ServerParamLayout.Size())
			wire.ServerParamLayout.Encode(b, sp)
			got := wire.ServerParamLayout.Decode(b)

			convey.Convey("Then binary fields survive and text-only fields fall back to defaults", func() {
				v, _ := got.Int("half_time")
				convey.So(v, convey.ShouldEqual, 3000)
				g, _ := got.Float("goal_width")
				convey.So(g, convey.ShouldEqual, 10.5)
				c, _ := got.Bool("coach")
				convey.So(c, convey.ShouldBeTrue)
				s, _ := got.Str("team_l_start")
				convey.So(s, convey.ShouldEqual, "")
			})
		})

		convey.Convey("When encoding and decoding player types and params", func() {
			b := make([]byte, wire.PlayerTypeLayout.Size())
			wire.LayoutFor(model.KindPlayerType).Encode(b, pt)
			got := wire.PlayerTypeLayout.Decode(b)
			pb := make([]byte, wire.PlayerParamLayout.Size())
			wire.PlayerParamLayout.Encode(pb, pp)
			gotPP := wire.PlayerParamLayout.Decode(pb)

			convey.Convey("Then values survive", func() {
				id, _ := got.Int("id")
				convey.So(id, convey.ShouldEqual, 7)
				d, _ := got.Float("player_decay")
				convey.So(d, convey.ShouldEqual, 0.375)
				seed, _ := gotPP.Int("random_seed")
				convey.So(seed, convey.ShouldEqual, 123456789)
			})
		})
	})
}
