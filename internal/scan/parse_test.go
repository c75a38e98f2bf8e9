package scan

import (
	"errors"
	"testing"
)

func TestSplitModelDirName(t *testing.T) {
	tests := []struct {
		name        string
		dir         string
		wantName    string
		wantVariant string
		wantErr     error
	}{
		{
			name:        "name and variant token",
			dir:         "Widget-1a2b3c",
			wantName:    "Widget",
			wantVariant: "1a2b3c",
		},
		{
			name:        "splits on the last separator",
			dir:         "Dark-Tower-abc123",
			wantName:    "Dark-Tower",
			wantVariant: "abc123",
		},
		{
			name:        "trailing separator leaves an empty variant",
			dir:         "Widget-",
			wantName:    "Widget",
			wantVariant: "",
		},
		{
			name:        "leading separator leaves an empty name",
			dir:         "-abc123",
			wantName:    "",
			wantVariant: "abc123",
		},
		{
			name:    "no separator",
			dir:     "Widget",
			wantErr: ErrModelDirFormat,
		},
		{
			name:    "empty string",
			dir:     "",
			wantErr: ErrModelDirFormat,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			name, variant, err := SplitModelDirName(tt.dir)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("SplitModelDirName(%q) error = %v, want %v", tt.dir, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("SplitModelDirName(%q) error = %v", tt.dir, err)
			}
			if name != tt.wantName {
				t.Errorf("name = %q, want %q", name, tt.wantName)
			}
			if variant != tt.wantVariant {
				t.Errorf("variant = %q, want %q", variant, tt.wantVariant)
			}
		})
	}
}

func TestParseModelPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		want    Identity
		wantErr error
	}{
		{
			name: "relative path",
			path: "library/CreatorA/CollectionB/Widget-1a2b",
			want: Identity{
				Creator:    "CreatorA",
				Collection: "CollectionB",
				Name:       "Widget",
				Variant:    "1a2b",
			},
		},
		{
			name: "absolute path keeps only the last three segments",
			path: "/srv/models/CreatorA/CollectionB/Widget-1a2b",
			want: Identity{
				Creator:    "CreatorA",
				Collection: "CollectionB",
				Name:       "Widget",
				Variant:    "1a2b",
			},
		},
		{
			name: "exactly three segments",
			path: "CreatorA/CollectionB/Widget-1a2b",
			want: Identity{
				Creator:    "CreatorA",
				Collection: "CollectionB",
				Name:       "Widget",
				Variant:    "1a2b",
			},
		},
		{
			name: "trailing slash is cleaned away",
			path: "CreatorA/CollectionB/Widget-1a2b/",
			want: Identity{
				Creator:    "CreatorA",
				Collection: "CollectionB",
				Name:       "Widget",
				Variant:    "1a2b",
			},
		},
		{
			name:    "model name without separator",
			path:    "CreatorA/CollectionB/Widget",
			wantErr: ErrModelDirFormat,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseModelPath(tt.path)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseModelPath(%q) error = %v, want %v", tt.path, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseModelPath(%q) error = %v", tt.path, err)
			}
			if got != tt.want {
				t.Errorf("ParseModelPath(%q) = %+v, want %+v", tt.path, got, tt.want)
			}
		})
	}
}

func TestParseModelPath_TooShort(t *testing.T) {
	t.Parallel()
	if _, err := ParseModelPath("CollectionB/Widget-1a2b"); err == nil {
		t.Fatal("ParseModelPath() expected error for two-segment path")
	}
}
