package model

func intParam(name string, def int) ParamSpec {
	return ParamSpec{Name: name, Type: ParamInt, Default: def}
}

func floatParam(name string, def float64) ParamSpec {
	return ParamSpec{Name: name, Type: ParamFloat, Default: def}
}

func boolParam(name string, def bool) ParamSpec {
	return ParamSpec{Name: name, Type: ParamBool, Default: def}
}

func strParam(name, def string) ParamSpec {
	return ParamSpec{Name: name, Type: ParamString, Default: def}
}

var serverParamSchema = newSchema(KindServerParam, []ParamSpec{
	floatParam("goal_width", 14.02),
	floatParam("inertia_moment", 5.0),
	floatParam("player_size", 0.3),
	floatParam("player_decay", 0.4),
	floatParam("player_rand", 0.1),
	floatParam("player_weight", 60.0),
	floatParam("player_speed_max", 1.05),
	floatParam("player_accel_max", 1.0),
	floatParam("stamina_max", 8000.0),
	floatParam("stamina_inc_max", 45.0),
	floatParam("recover_init", 1.0),
	floatParam("recover_dec_thr", 0.3),
	floatParam("recover_min", 0.5),
	floatParam("recover_dec", 0.002),
	floatParam("effort_init", 1.0),
	floatParam("effort_dec_thr", 0.3),
	floatParam("effort_min", 0.6),
	floatParam("effort_dec", 0.005),
	floatParam("effort_inc_thr", 0.6),
	floatParam("effort_inc", 0.01),
	floatParam("kick_rand", 0.1),
	boolParam("team_actuator_noise", false),
	floatParam("prand_factor_l", 1.0),
	floatParam("prand_factor_r", 1.0),
	floatParam("kick_rand_factor_l", 1.0),
	floatParam("kick_rand_factor_r", 1.0),
	floatParam("ball_size", 0.085),
	floatParam("ball_decay", 0.94),
	floatParam("ball_rand", 0.05),
	floatParam("ball_weight", 0.2),
	floatParam("ball_speed_max", 3.0),
	floatParam("ball_accel_max", 2.7),
	floatParam("dash_power_rate", 0.006),
	floatParam("kick_power_rate", 0.027),
	floatParam("kickable_margin", 0.7),
	floatParam("control_radius", 2.0),
	floatParam("control_radius_width", 1.7),
	floatParam("maxpower", 100.0),
	floatParam("minpower", -100.0),
	floatParam("maxmoment", 180.0),
	floatParam("minmoment", -180.0),
	floatParam("maxneckmoment", 180.0),
	floatParam("minneckmoment", -180.0),
	floatParam("maxneckang", 90.0),
	floatParam("minneckang", -90.0),
	floatParam("visible_angle", 90.0),
	floatParam("visible_distance", 3.0),
	floatParam("wind_dir", 0.0),
	floatParam("wind_force", 0.0),
	floatParam("wind_ang", 0.0),
	floatParam("wind_rand", 0.0),
	floatParam("catchable_area_l", 1.2),
	floatParam("catchable_area_w", 1.0),
	floatParam("catch_probability", 1.0),
	intParam("goalie_max_moves", 2),
	floatParam("corner_kick_margin", 1.0),
	floatParam("offside_active_area_size", 2.5),
	boolParam("wind_none", false),
	boolParam("wind_random", false),
	intParam("say_coach_cnt_max", 128),
	intParam("say_coach_msg_size", 128),
	intParam("clang_win_size", 300),
	intParam("clang_define_win", 1),
	intParam("clang_meta_win", 1),
	intParam("clang_advice_win", 1),
	intParam("clang_info_win", 1),
	intParam("clang_mess_delay", 50),
	intParam("clang_mess_per_cycle", 1),
	intParam("half_time", 300),
	intParam("simulator_step", 100),
	intParam("send_step", 150),
	intParam("recv_step", 10),
	intParam("sense_body_step", 100),
	intParam("lcm_step", 300),
	intParam("say_msg_size", 10),
	intParam("hear_max", 1),
	intParam("hear_inc", 1),
	intParam("hear_decay", 1),
	intParam("catch_ban_cycle", 5),
	intParam("slow_down_factor", 1),
	boolParam("use_offside", true),
	boolParam("forbid_kick_off_offside", true),
	floatParam("offside_kick_margin", 9.15),
	floatParam("audio_cut_dist", 50.0),
	floatParam("quantize_step", 0.1),
	floatParam("quantize_step_l", 0.01),
	floatParam("quantize_step_dir", -1.0),
	floatParam("quantize_step_dist_team_l", -1.0),
	floatParam("quantize_step_dist_team_r", -1.0),
	floatParam("quantize_step_dist_l_team_l", -1.0),
	floatParam("quantize_step_dist_l_team_r", -1.0),
	floatParam("quantize_step_dir_team_l", -1.0),
	floatParam("quantize_step_dir_team_r", -1.0),
	boolParam("coach", false),
	boolParam("coach_w_referee", false),
	boolParam("old_coach_hear", false),
	intParam("send_vi_step", 100),
	intParam("start_goal_l", 0),
	intParam("start_goal_r", 0),
	boolParam("fullstate_l", false),
	boolParam("fullstate_r", false),
	intParam("drop_ball_time", 100),
	boolParam("synch_mode", false),
	intParam("synch_offset", 60),
	intParam("synch_micro_sleep", 1),
	intParam("point_to_ban", 5),
	intParam("point_to_duration", 20),
	// Fields below are carried by the text revisions only.
	floatParam("tackle_dist", 2.0),
	floatParam("tackle_back_dist", 0.0),
	floatParam("tackle_width", 1.25),
	floatParam("tackle_exponent", 6.0),
	intParam("tackle_cycles", 10),
	floatParam("tackle_power_rate", 0.027),
	floatParam("max_tackle_power", 100.0),
	floatParam("max_back_tackle_power", 0.0),
	floatParam("player_speed_max_min", 0.75),
	floatParam("extra_stamina", 50.0),
	floatParam("stamina_capacity", 130600.0),
	floatParam("max_dash_angle", 180.0),
	floatParam("min_dash_angle", -180.0),
	floatParam("dash_angle_step", 1.0),
	floatParam("side_dash_rate", 0.4),
	floatParam("back_dash_rate", 0.7),
	floatParam("max_dash_power", 100.0),
	floatParam("min_dash_power", -100.0),
	floatParam("foul_detect_probability", 0.5),
	floatParam("foul_exponent", 10.0),
	intParam("foul_cycles", 5),
	floatParam("ball_stuck_area", 3.0),
	intParam("extra_half_time", 100),
	intParam("nr_normal_halfs", 2),
	intParam("nr_extra_halfs", 2),
	boolParam("penalty_shoot_outs", true),
	intParam("pen_nr_kicks", 5),
	intParam("pen_max_extra_kicks", 5),
	floatParam("pen_dist_x", 42.5),
	floatParam("pen_max_goalie_dist_x", 14.0),
	intParam("pen_before_setup_wait", 10),
	intParam("pen_setup_wait", 70),
	intParam("pen_ready_wait", 10),
	intParam("pen_taken_wait", 150),
	boolParam("pen_random_winner", false),
	boolParam("pen_allow_mult_kicks", true),
	boolParam("pen_coach_moves_players", true),
	boolParam("golden_goal", false),
	boolParam("free_kick_faults", true),
	boolParam("back_passes", true),
	boolParam("proper_goal_kicks", false),
	boolParam("auto_mode", false),
	intParam("kick_off_wait", 100),
	intParam("connect_wait", 300),
	intParam("game_over_wait", 100),
	boolParam("game_logging", true),
	boolParam("text_logging", true),
	boolParam("record_messages", false),
	boolParam("send_comms", false),
	boolParam("profile", false),
	boolParam("verbose", false),
	intParam("game_log_version", 5),
	intParam("game_log_compression", 0),
	intParam("text_log_compression", 0),
	boolParam("game_log_dated", true),
	boolParam("text_log_dated", true),
	boolParam("keepaway", false),
	floatParam("keepaway_length", 20.0),
	floatParam("keepaway_width", 20.0),
	boolParam("keepaway_logging", true),
	intParam("keepaway_start", -1),
	intParam("port", 6000),
	intParam("coach_port", 6001),
	intParam("olcoach_port", 6002),
	intParam("max_goal_kicks", 3),
	intParam("ball_stuck_area_cycles", 0),
	strParam("team_l_start", ""),
	strParam("team_r_start", ""),
	strParam("landmark_file", "~/.rcssserver-landmark.xml"),
	strParam("log_date_format", "%Y%m%d%H%M%S-"),
	strParam("game_log_dir", "./"),
	strParam("text_log_dir", "./"),
	strParam("game_log_fixed_name", "rcssserver"),
	strParam("text_log_fixed_name", "rcssserver"),
	strParam("keepaway_log_dir", "./"),
	strParam("keepaway_log_fixed_name", "rcssserver"),
	strParam("module_dir", ""),
	strParam("coach_msg_file", ""),
})

var playerParamSchema = newSchema(KindPlayerParam, []ParamSpec{
	intParam("player_types", 18),
	intParam("subs_max", 3),
	intParam("pt_max", 1),
	floatParam("player_speed_max_delta_min", 0.0),
	floatParam("player_speed_max_delta_max", 0.0),
	floatParam("stamina_inc_max_delta_factor", -6000.0),
	floatParam("player_decay_delta_min", -0.1),
	floatParam("player_decay_delta_max", 0.1),
	floatParam("inertia_moment_delta_factor", 25.0),
	floatParam("dash_power_rate_delta_min", 0.0),
	floatParam("dash_power_rate_delta_max", 0.0),
	floatParam("player_size_delta_factor", -100.0),
	floatParam("kickable_margin_delta_min", -0.1),
	floatParam("kickable_margin_delta_max", 0.1),
	floatParam("kick_rand_delta_factor", 1.0),
	floatParam("extra_stamina_delta_min", 0.0),
	floatParam("extra_stamina_delta_max", 50.0),
	floatParam("effort_max_delta_factor", -0.004),
	floatParam("effort_min_delta_factor", -0.004),
	intParam("random_seed", -1),
	floatParam("new_dash_power_rate_delta_min", -0.0012),
	floatParam("new_dash_power_rate_delta_max", 0.0008),
	floatParam("new_stamina_inc_max_delta_factor", -6000.0),
	boolParam("allow_mult_default_type", false),
	// Fields below are carried by the text revisions only.
	floatParam("kick_power_rate_delta_min", 0.0),
	floatParam("kick_power_rate_delta_max", 0.0),
	floatParam("foul_detect_probability_delta_factor", 0.0),
	floatParam("catchable_area_l_stretch_min", 1.0),
	floatParam("catchable_area_l_stretch_max", 1.3),
})

var playerTypeSchema = newSchema(KindPlayerType, []ParamSpec{
	intParam("id", 0),
	floatParam("player_speed_max", 1.05),
	floatParam("stamina_inc_max", 45.0),
	floatParam("player_decay", 0.4),
	floatParam("inertia_moment", 5.0),
	floatParam("dash_power_rate", 0.006),
	floatParam("player_size", 0.3),
	floatParam("kickable_margin", 0.7),
	floatParam("kick_rand", 0.1),
	floatParam("extra_stamina", 50.0),
	floatParam("effort_max", 1.0),
	floatParam("effort_min", 0.6),
	// Fields below are carried by the text revisions only.
	floatParam("kick_power_rate", 0.027),
	floatParam("foul_detect_probability", 0.5),
	floatParam("catchable_area_l_stretch", 1.0),
})
