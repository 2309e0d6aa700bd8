package render

import (
	"bytes"
	"image/png"
	"path/filepath"
	"time"

	"github.com/voc/voctozoom/pkg/channel"
	"github.com/voc/voctozoom/pkg/geometry"
	"github.com/voc/voctozoom/pkg/os"
)

// Screenshots saves composed window pictures as PNG files.
type Screenshots struct {
	Folder string
	Size   geometry.Size
}

func (s Screenshots) Save(views []channel.View) (string, error) {
	if err := os.CheckCreateDir(s.Folder); err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, Compose(views, s.Size)); err != nil {
		return "", err
	}
	name := filepath.Join(s.Folder, "voctozoom-"+time.Now().Format("20060102-150405.000")+".png")
	if err := os.WriteFile(name, buf.Bytes(), 0644); err != nil {
		return "", err
	}
	return name, nil
}
