package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/photomark/internal/theme"
)

// Parse reads configuration from an io.Reader.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var section string
	var current *theme.Theme

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.ToLower(strings.TrimSuffix(strings.TrimPrefix(line, "["), "]"))
			current = nil
			if name, ok := strings.CutPrefix(section, "theme."); ok {
				// Start with defaults so missing keys are fine
				current = theme.Default()
				current.Name = name
				cfg.Themes[name] = current
			}
			continue
		}

		// Key = Value or Key: Value
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			if key, value, ok = strings.Cut(line, ":"); !ok {
				continue
			}
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		if len(value) >= 2 && strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") {
			value = value[1 : len(value)-1]
		}

		var err error
		switch {
		case current != nil:
			err = current.Set(key, value)
		case section == "":
			err = setRootField(cfg, key, value)
		case section == "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		case section == "snap":
			err = setSnapField(&cfg.Snap, key, value)
		case section == "export":
			err = setExportField(&cfg.Export, key, value)
		case section == "surface":
			err = setSurfaceField(&cfg.Surface, key, value)
		case section == "history":
			err = setHistoryField(&cfg.History, key, value)
		case section == "line":
			err = setLineField(&cfg.Line, key, value)
		}
		if err != nil {
			if section == "" {
				return nil, fmt.Errorf("error in root section: %w", err)
			}
			return nil, fmt.Errorf("error in section [%s]: %w", section, err)
		}
	}

	return cfg, scanner.Err()
}

func setRootField(cfg *Config, key, value string) error {
	switch key {
	case "theme":
		cfg.Theme = value
	case "save_dir":
		cfg.SaveDir = value
	}
	return nil
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	switch key {
	case "capture":
		n.Capture = b
	case "export", "save":
		n.Export = b
	case "copy":
		n.Copy = b
	}
	return nil
}

func setSnapField(s *Snap, key, value string) error {
	if key != "threshold" {
		return nil
	}
	f, err := positiveFloat(key, value)
	if err != nil {
		return err
	}
	s.Threshold = f
	return nil
}

func setExportField(e *Export, key, value string) error {
	switch key {
	case "multiplier":
		f, err := positiveFloat(key, value)
		if err != nil {
			return err
		}
		e.Multiplier = f
	case "format":
		e.Format = strings.ToLower(value)
	case "quality":
		q, err := strconv.Atoi(value)
		if err != nil || q < 1 || q > 100 {
			return fmt.Errorf("quality must be 1-100, got %q", value)
		}
		e.Quality = q
	}
	return nil
}

func setSurfaceField(s *Surface, key, value string) error {
	switch key {
	case "width", "height":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s must be a positive integer, got %q", key, value)
		}
		if key == "width" {
			s.Width = n
		} else {
			s.Height = n
		}
	}
	return nil
}

func setHistoryField(h *History, key, value string) error {
	if key != "limit" {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return fmt.Errorf("limit must be a non-negative integer, got %q", value)
	}
	h.Limit = n
	return nil
}

func setLineField(l *Line, key, value string) error {
	switch key {
	case "stroke":
		l.Stroke = value
	case "width":
		f, err := positiveFloat(key, value)
		if err != nil {
			return err
		}
		l.Width = f
	}
	return nil
}

func positiveFloat(key, value string) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f <= 0 {
		return 0, fmt.Errorf("%s must be a positive number, got %q", key, value)
	}
	return f, nil
}
