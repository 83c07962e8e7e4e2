package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type EditorOptions struct {
	TabStop   int `toml:"tab-stop"`
	QuitTimes int `toml:"quit-times"`
}

type Theme struct {
	Foreground            string `toml:"foreground"`
	Background            string `toml:"background"`
	StatuslineForeground  string `toml:"statusline-foreground"`
	StatuslineBackground  string `toml:"statusline-background"`
	SearchMatchForeground string `toml:"search-foreground"`
	SearchMatchBackground string `toml:"search-background"`
	SyntaxComment         string `toml:"syntax-comment"`
	SyntaxBlockComment    string `toml:"syntax-block-comment"`
	SyntaxKeyword         string `toml:"syntax-keyword"`
	SyntaxType            string `toml:"syntax-type"`
	SyntaxString          string `toml:"syntax-string"`
	SyntaxNumber          string `toml:"syntax-number"`
}

type Config struct {
	Editor EditorOptions `toml:"editor"`
	Theme  Theme         `toml:"theme"`
}

func Default() Config {
	return Config{
		Editor: EditorOptions{
			TabStop:   8,
			QuitTimes: 3,
		},
		Theme: Theme{
			Foreground:            "#B3B1AD",
			Background:            "#0A0E14",
			StatuslineForeground:  "#0A0E14",
			StatuslineBackground:  "#B3B1AD",
			SearchMatchForeground: "#000000",
			SearchMatchBackground: "#FFD700",
			SyntaxComment:         "#5C6773",
			SyntaxBlockComment:    "#5C6773",
			SyntaxKeyword:         "#FFA759",
			SyntaxType:            "#5CCFE6",
			SyntaxString:          "#BAE67E",
			SyntaxNumber:          "#D4BFFF",
		},
	}
}

func Load() (Config, error) {
	cfg := Default()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var userCfg Config
	if _, err := toml.Decode(string(data), &userCfg); err != nil {
		return cfg, err
	}

	if userCfg.Editor.TabStop > 0 {
		cfg.Editor.TabStop = userCfg.Editor.TabStop
	}
	if userCfg.Editor.QuitTimes > 0 {
		cfg.Editor.QuitTimes = userCfg.Editor.QuitTimes
	}
	mergeTheme(&cfg.Theme, userCfg.Theme)
	return cfg, nil
}

func mergeTheme(dst *Theme, src Theme) {
	fields := []struct {
		dst *string
		src string
	}{
		{&dst.Foreground, src.Foreground},
		{&dst.Background, src.Background},
		{&dst.StatuslineForeground, src.StatuslineForeground},
		{&dst.StatuslineBackground, src.StatuslineBackground},
		{&dst.SearchMatchForeground, src.SearchMatchForeground},
		{&dst.SearchMatchBackground, src.SearchMatchBackground},
		{&dst.SyntaxComment, src.SyntaxComment},
		{&dst.SyntaxBlockComment, src.SyntaxBlockComment},
		{&dst.SyntaxKeyword, src.SyntaxKeyword},
		{&dst.SyntaxType, src.SyntaxType},
		{&dst.SyntaxString, src.SyntaxString},
		{&dst.SyntaxNumber, src.SyntaxNumber},
	}
	for _, f := range fields {
		if f.src != "" {
			*f.dst = f.src
		}
	}
}

func ConfigDir() (string, error) {
	if v := os.Getenv("KED_CONFIG_HOME"); v != "" {
		return filepath.Join(v), nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "ked"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "ked"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
