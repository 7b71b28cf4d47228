// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Default values for system and app configuration files.

package config

func applySystemDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults("", Section{
		"defaultApp": "popoverdemo",
	})
	cfg.RegisterDefaults("host", Section{
		"cell_width":  8,
		"cell_height": 16,
		"background":  "black",
		"fps":         60,
	})
	cfg.RegisterDefaults("popover", Section{
		"overlay_color":        "default",
		"overlay_opacity":      0.0,
		"background_color":     "white",
		"direction":            "auto",
		"width":                375.0,
		"height":               324.0,
		"corner_radius":        12.0,
		"content_insets":       []interface{}{0.0, 0.0, 0.0, 0.0},
		"offset":               []interface{}{0.0, 0.0},
		"angle_follows_offset": false,
		"hide_angle":           false,
		"angle_size":           []interface{}{20.0, 10.0},
		"entrance_ms":          500,
		"damping_ratio":        0.8,
		"spring_velocity":      3.0,
	})
}

func applyAppDefaults(app string, cfg Config) {
	if cfg == nil {
		return
	}
	switch app {
	case "popoverdemo":
		cfg.RegisterDefaults("popoverdemo", Section{
			"dim_overlay":   true,
			"update_width":  300.0,
			"update_height": 200.0,
			"update_ms":     300,
			"hot_reload":    true,
		})
	}
}
