package styles

import (
	"testing"

	"github.com/gerunddev/orgparse/internal/token"
)

func TestKindStyle(t *testing.T) {
	if got, want := KindStyle(token.Error).GetForeground(), ErrorStyle.GetForeground(); got != want {
		t.Errorf("Error tokens should use the error color, got %v want %v", got, want)
	}
	if !KindStyle(token.HeadingStars).GetBold() {
		t.Error("Heading tokens should render bold")
	}
	if KindStyle(token.Text).Render("plain") == "" {
		t.Error("Text style rendered nothing")
	}
}
