package editor

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestOpener_Command(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		onPath   map[string]string
		wantArgs []string
		wantErr  bool
	}{
		{
			name:     "editor wins",
			env:      map[string]string{"EDITOR": "hx", "VISUAL": "code"},
			wantArgs: []string{"hx", "/items/a.md"},
		},
		{
			name:     "editor with arguments",
			env:      map[string]string{"EDITOR": "code --wait"},
			wantArgs: []string{"code", "--wait", "/items/a.md"},
		},
		{
			name:     "visual fallback",
			env:      map[string]string{"EDITOR": "  ", "VISUAL": "emacs"},
			wantArgs: []string{"emacs", "/items/a.md"},
		},
		{
			name:     "path lookup",
			onPath:   map[string]string{"vi": "/usr/bin/vi", "nano": "/usr/bin/nano"},
			wantArgs: []string{"/usr/bin/vi", "/items/a.md"},
		},
		{
			name:    "nothing available",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &Opener{
				getenv: func(k string) string { return tt.env[k] },
				lookPath: func(name string) (string, error) {
					if p, ok := tt.onPath[name]; ok {
						return p, nil
					}
					return "", errors.New("not found")
				},
			}
			cmd, err := o.Command("/items/a.md")
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Command() error: %v", err)
			}
			if diff := cmp.Diff(tt.wantArgs, cmd.Args); diff != "" {
				t.Errorf("args mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
