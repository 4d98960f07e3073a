package covidbar

import (
	_ "embed"
	"encoding/base64"

	"github.com/ilyalavrinov/covidbar/pkg/bitbar"
)

//go:embed icon.png
var icon []byte

// iconLine shows the icon in the menu bar; template images follow the
// light/dark appearance of the bar.
func iconLine() bitbar.Line {
	return bitbar.NewLine("", bitbar.TemplateImage(base64.StdEncoding.EncodeToString(icon)))
}
