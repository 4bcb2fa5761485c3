package domain

import "testing"

func TestRules_RelPath(t *testing.T) {
	key := FolderKey{Chain: "memecore", Token: "0xabc"}

	tests := []struct {
		name  string
		rules Rules
		file  string
		want  string
	}{
		{"folder", DefaultRules(), "", "blockchains/memecore/assets/0xabc"},
		{"file", DefaultRules(), "logo.png", "blockchains/memecore/assets/0xabc/logo.png"},
		{"custom labels", Rules{RootLabel: "chains", AssetsLabel: "tokens"}, "info.json", "chains/memecore/tokens/0xabc/info.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rules.RelPath(key, tt.file); got != tt.want {
				t.Errorf("RelPath() = %q, want %q", got, tt.want)
			}
		})
	}
}
