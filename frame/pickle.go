package frame

import (
	"bytes"
	"encoding/gob"

	"github.com/c2fo/azfs/utils"
)

// EncodePickle serializes f with encoding/gob and compresses the result with c.
func EncodePickle(f *Frame, c utils.Compression) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(f); err != nil {
		return nil, utils.WrapEncodeError(err)
	}
	return utils.Compress(c, buf.Bytes())
}

// DecodePickle reverses EncodePickle.  An empty c sniffs the codec from the payload's magic bytes.
func DecodePickle(data []byte, c utils.Compression) (*Frame, error) {
	if c == "" {
		c = utils.SniffCompression(data)
	}
	raw, err := utils.Decompress(c, data)
	if err != nil {
		return nil, err
	}
	f := &Frame{}
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(f); err != nil {
		return nil, utils.WrapDecodeError(err)
	}
	return f, nil
}
