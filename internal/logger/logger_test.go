package logger

import (
	"os"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":    zerolog.DebugLevel,
		"DEBUG":    zerolog.DebugLevel,
		"warn":     zerolog.WarnLevel,
		"warning":  zerolog.WarnLevel,
		"error":    zerolog.ErrorLevel,
		"ERR":      zerolog.ErrorLevel,
		"off":      zerolog.Disabled,
		"disabled": zerolog.Disabled,
		"":         zerolog.InfoLevel,
		"verbose":  zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q)=%v, want %v", in, got, want)
		}
	}
}

func TestGetenv(t *testing.T) {
	t.Setenv("PRICEMACHINE_TEST_KEY", "val")
	if v := getenv("PRICEMACHINE_TEST_KEY", "def"); v != "val" {
		t.Fatalf("getenv returned %q, want 'val'", v)
	}
	if v := getenv("PRICEMACHINE_TEST_MISSING", "def"); v != "def" {
		t.Fatalf("getenv returned %q, want 'def'", v)
	}
}

func TestOutputFor(t *testing.T) {
	if outputFor("STDOUT") != os.Stdout {
		t.Fatalf("stdout not selected")
	}
	if outputFor("") != os.Stderr || outputFor("stderr") != os.Stderr || outputFor("file") != os.Stderr {
		t.Fatalf("stderr should be the default")
	}
}

func TestInit_FromEnvironment(t *testing.T) {
	cases := []struct {
		name   string
		level  string
		pretty string
		want   zerolog.Level
	}{
		{name: "defaults", want: zerolog.InfoLevel},
		{name: "debug pretty", level: "debug", pretty: "true", want: zerolog.DebugLevel},
		{name: "silenced for interactive use", level: "off", want: zerolog.Disabled},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tc.level)
			t.Setenv("LOG_PRETTY", tc.pretty)
			t.Setenv("LOG_OUTPUT", "")
			Init()
			if got := L().GetLevel(); got != tc.want {
				t.Fatalf("level=%v, want %v", got, tc.want)
			}
		})
	}
}

func TestL_InitializesLazily(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	base = zerolog.Logger{}
	lg := L()
	if lg == nil || lg.GetLevel() == zerolog.NoLevel {
		t.Fatalf("logger not initialized on first use")
	}
}
