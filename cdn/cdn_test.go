package cdn

import (
	"testing"

	"github.com/quietwire/discordrl/snowflake"
)

func TestUserAvatar(t *testing.T) {
	tests := []struct {
		name       string
		avatarHash string
		extension  Extension
		dynamic    bool
		wantExt    string
		wantErr    bool
	}{
		{name: "static png", avatarHash: "abcdef", extension: PNG, dynamic: false, wantExt: "png"},
		{name: "dynamic animated forces gif", avatarHash: "a_abcdef", extension: PNG, dynamic: true, wantExt: "gif"},
		{name: "dynamic non-animated keeps extension", avatarHash: "abcdef", extension: WebP, dynamic: true, wantExt: "webp"},
		{name: "invalid extension", avatarHash: "abcdef", extension: "bmp", wantErr: true},
	}
	b := NewBuilder("")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url, err := b.UserAvatar(snowflake.ID("1"), tt.avatarHash, tt.extension, 256, tt.dynamic)
			if (err != nil) != tt.wantErr {
				t.Fatalf("UserAvatar() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			want := "https://cdn.discordapp.com/avatars/1/" + tt.avatarHash + "." + tt.wantExt + "?size=256"
			if url != want {
				t.Errorf("UserAvatar() = %q, want %q", url, want)
			}
		})
	}
}

func TestValidate_BadSize(t *testing.T) {
	b := NewBuilder("")
	_, err := b.UserAvatar(snowflake.ID("1"), "abc", PNG, 100, false)
	if err == nil {
		t.Fatal("expected error for invalid size")
	}
}

func TestNewBuilder_CustomBase(t *testing.T) {
	b := NewBuilder("https://cdn.example.test")
	url := b.DefaultUserAvatar(0)
	if url != "https://cdn.example.test/embed/avatars/0.png" {
		t.Errorf("DefaultUserAvatar() = %q", url)
	}
}
