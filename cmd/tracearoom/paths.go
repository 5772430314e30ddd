package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/taigrr/tracearoom/internal/config"
)

// parseVec parses "x,y,z".
func parseVec(s string) (config.Vec, error) {
	var v config.Vec
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return v, fmt.Errorf("want x,y,z, got %q", s)
	}
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return v, fmt.Errorf("component %d of %q: %w", i, s, err)
		}
		v[i] = f
	}
	return v, nil
}
