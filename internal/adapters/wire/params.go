package wire

import (
	"github.com/okian/rcg/internal/domain/model"
)

type fieldKind uint8

const (
	kindInt16   fieldKind = iota // int parameter as int16
	kindInt32                    // int parameter as int32
	kindFixed32                  // float parameter scaled by 65536
	kindBool16                   // bool parameter as int16 0/1
	kindSpare16                  // reserved, written as zero
	kindSpare32                  // reserved, written as zero
)

func (k fieldKind) size() int {
	switch k {
	case kindInt32, kindFixed32, kindSpare32:
		return 4
	}
	return 2
}

type field struct {
	name   string
	kind   fieldKind
	offset int
}

// Layout is the byte layout of one binary parameter structure.
type Layout struct {
	kind   model.ParamKind
	fields []field
	size   int
}

// newLayout assigns naturally aligned offsets to fields in order.
func newLayout(kind model.ParamKind, fields ...field) *Layout {
	off, align := 0, 1
	for i := range fields {
		sz := fields[i].kind.size()
		if off%sz != 0 {
			off += sz - off%sz
		}
		fields[i].offset = off
		off += sz
		align = max(align, sz)
	}
	if off%align != 0 {
		off += align - off%align
	}
	return &Layout{kind: kind, fields: fields, size: off}
}

// Size returns the structure size in bytes, padding included.
func (l *Layout) Size() int { return l.size }

// Kind returns the parameter record kind of the layout.
func (l *Layout) Kind() model.ParamKind { return l.kind }

// Decode reads b into a fresh set of defaults. Fields the binary structure
// does not carry keep their defaults.
func (l *Layout) Decode(b []byte) *model.ParamSet {
	p := model.NewParamSet(l.kind)
	for _, fd := range l.fields {
		switch fd.kind {
		case kindInt16:
			p.SetInt(fd.name, get16(b, fd.offset))
		case kindInt32:
			p.SetInt(fd.name, get32(b, fd.offset))
		case kindFixed32:
			p.SetFloat(fd.name, getFixed32(b, fd.offset))
		case kindBool16:
			p.SetBool(fd.name, get16(b, fd.offset) != 0)
		}
	}
	return p
}

// Encode writes p into b, which must be at least Size bytes.
func (l *Layout) Encode(b []byte, p *model.ParamSet) {
	clear(b[:l.size])
	for _, fd := range l.fields {
		switch fd.kind {
		case kindInt16:
			v, _ := p.Int(fd.name)
			put16(b, fd.offset, v)
		case kindInt32:
			v, _ := p.Int(fd.name)
			put32(b, fd.offset, v)
		case kindFixed32:
			v, _ := p.Float(fd.name)
			putFixed32(b, fd.offset, v)
		case kindBool16:
			if v, _ := p.Bool(fd.name); v {
				put16(b, fd.offset, 1)
			}
		}
	}
}

// LayoutFor returns the binary layout of a parameter record kind.
func LayoutFor(kind model.ParamKind) *Layout {
	switch kind {
	case model.KindPlayerParam:
		return PlayerParamLayout
	case model.KindPlayerType:
		return PlayerTypeLayout
	}
	return ServerParamLayout
}

func i16(name string) field    { return field{name: name, kind: kindInt16} }
func i32(name string) field    { return field{name: name, kind: kindInt32} }
func fx32(name string) field   { return field{name: name, kind: kindFixed32} }
func bool16(name string) field { return field{name: name, kind: kindBool16} }

func spare32(n int) []field {
	fs := make([]field, n)
	for i := range fs {
		fs[i] = field{kind: kindSpare32}
	}
	return fs
}

func spare16(n int) []field {
	fs := make([]field, n)
	for i := range fs {
		fs[i] = field{kind: kindSpare16}
	}
	return fs
}

func fields(groups ...[]field) []field {
	var out []field
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// ServerParamLayout is server_params_t.
var ServerParamLayout = newLayout(model.KindServerParam, fields(
	[]field{
		fx32("goal_width"),
		fx32("inertia_moment"),
		fx32("player_size"),
		fx32("player_decay"),
		fx32("player_rand"),
		fx32("player_weight"),
		fx32("player_speed_max"),
		fx32("player_accel_max"),
		fx32("stamina_max"),
		fx32("stamina_inc_max"),
		fx32("recover_init"),
		fx32("recover_dec_thr"),
		fx32("recover_min"),
		fx32("recover_dec"),
		fx32("effort_init"),
		fx32("effort_dec_thr"),
		fx32("effort_min"),
		fx32("effort_dec"),
		fx32("effort_inc_thr"),
		fx32("effort_inc"),
		fx32("kick_rand"),
		bool16("team_actuator_noise"),
		fx32("prand_factor_l"),
		fx32("prand_factor_r"),
		fx32("kick_rand_factor_l"),
		fx32("kick_rand_factor_r"),
		fx32("ball_size"),
		fx32("ball_decay"),
		fx32("ball_rand"),
		fx32("ball_weight"),
		fx32("ball_speed_max"),
		fx32("ball_accel_max"),
		fx32("dash_power_rate"),
		fx32("kick_power_rate"),
		fx32("kickable_margin"),
		fx32("control_radius"),
		fx32("control_radius_width"),
		fx32("maxpower"),
		fx32("minpower"),
		fx32("maxmoment"),
		fx32("minmoment"),
		fx32("maxneckmoment"),
		fx32("minneckmoment"),
		fx32("maxneckang"),
		fx32("minneckang"),
		fx32("visible_angle"),
		fx32("visible_distance"),
		fx32("wind_dir"),
		fx32("wind_force"),
		fx32("wind_ang"),
		fx32("wind_rand"),
		fx32("catchable_area_l"),
		fx32("catchable_area_w"),
		fx32("catch_probability"),
		i16("goalie_max_moves"),
		fx32("corner_kick_margin"),
		fx32("offside_active_area_size"),
		bool16("wind_none"),
		bool16("wind_random"),
		i16("say_coach_cnt_max"),
		i16("say_coach_msg_size"),
		i16("clang_win_size"),
		i16("clang_define_win"),
		i16("clang_meta_win"),
		i16("clang_advice_win"),
		i16("clang_info_win"),
		i16("clang_mess_delay"),
		i16("clang_mess_per_cycle"),
		i16("half_time"),
		i16("simulator_step"),
		i16("send_step"),
		i16("recv_step"),
		i16("sense_body_step"),
		i16("lcm_step"),
		i16("say_msg_size"),
		i16("hear_max"),
		i16("hear_inc"),
		i16("hear_decay"),
		i16("catch_ban_cycle"),
		i16("slow_down_factor"),
		bool16("use_offside"),
		bool16("forbid_kick_off_offside"),
		fx32("offside_kick_margin"),
		fx32("audio_cut_dist"),
		fx32("quantize_step"),
		fx32("quantize_step_l"),
		fx32("quantize_step_dir"),
		fx32("quantize_step_dist_team_l"),
		fx32("quantize_step_dist_team_r"),
		fx32("quantize_step_dist_l_team_l"),
		fx32("quantize_step_dist_l_team_r"),
		fx32("quantize_step_dir_team_l"),
		fx32("quantize_step_dir_team_r"),
		bool16("coach"),
		bool16("coach_w_referee"),
		bool16("old_coach_hear"),
		i16("send_vi_step"),
		i16("start_goal_l"),
		i16("start_goal_r"),
		bool16("fullstate_l"),
		bool16("fullstate_r"),
		i16("drop_ball_time"),
		bool16("synch_mode"),
		i16("synch_offset"),
		i16("synch_micro_sleep"),
		i16("point_to_ban"),
		i16("point_to_duration"),
	},
)...)

// PlayerParamLayout is player_params_t.
var PlayerParamLayout = newLayout(model.KindPlayerParam, fields(
	[]field{
		i16("player_types"),
		i16("subs_max"),
		i16("pt_max"),
		fx32("player_speed_max_delta_min"),
		fx32("player_speed_max_delta_max"),
		fx32("stamina_inc_max_delta_factor"),
		fx32("player_decay_delta_min"),
		fx32("player_decay_delta_max"),
		fx32("inertia_moment_delta_factor"),
		fx32("dash_power_rate_delta_min"),
		fx32("dash_power_rate_delta_max"),
		fx32("player_size_delta_factor"),
		fx32("kickable_margin_delta_min"),
		fx32("kickable_margin_delta_max"),
		fx32("kick_rand_delta_factor"),
		fx32("extra_stamina_delta_min"),
		fx32("extra_stamina_delta_max"),
		fx32("effort_max_delta_factor"),
		fx32("effort_min_delta_factor"),
		i32("random_seed"),
		fx32("new_dash_power_rate_delta_min"),
		fx32("new_dash_power_rate_delta_max"),
		fx32("new_stamina_inc_max_delta_factor"),
	},
	spare32(7),
	[]field{bool16("allow_mult_default_type")},
	spare16(9),
)...)

// PlayerTypeLayout is player_type_t.
var PlayerTypeLayout = newLayout(model.KindPlayerType, fields(
	[]field{
		i16("id"),
		fx32("player_speed_max"),
		fx32("stamina_inc_max"),
		fx32("player_decay"),
		fx32("inertia_moment"),
		fx32("dash_power_rate"),
		fx32("player_size"),
		fx32("kickable_margin"),
		fx32("kick_rand"),
		fx32("extra_stamina"),
		fx32("effort_max"),
		fx32("effort_min"),
	},
	spare32(10),
)...)
