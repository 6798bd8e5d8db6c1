package main

import (
	"bytes"
	"io"

	"github.com/cheggaaa/pb/v3"
)

// transfer writes data to w, drawing a byte progress bar on stderr when progress is enabled.
func (a *app) transfer(w io.Writer, data []byte) error {
	if !a.cfg.Progress {
		_, err := w.Write(data)
		return err
	}

	bar := pb.New64(int64(len(data)))
	bar.SetTemplate(pb.Full)
	bar.Set(pb.Bytes, true)
	bar.SetWriter(a.stderr)
	bar.Start()
	defer bar.Finish()

	_, err := io.Copy(w, bar.NewProxyReader(bytes.NewReader(data)))
	return err
}
