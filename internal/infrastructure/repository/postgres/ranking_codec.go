package postgres

import (
	"bytes"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/futsal-club/internal/domain/ranking"
	"github.com/valyala/bytebufferpool"
)

const snapshotPayloadVersion = 1

type snapshotPayload struct {
	Version int             `json:"version"`
	Entries []ranking.Entry `json:"entries"`
}

// encodeSnapshotEntries renders the entries as the JSONB payload column.
func encodeSnapshotEntries(entries []ranking.Entry) (string, error) {
	if entries == nil {
		entries = []ranking.Entry{}
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(snapshotPayload{
		Version: snapshotPayloadVersion,
		Entries: entries,
	}); err != nil {
		return "", crerr.Wrap(err, "encode ranking snapshot payload")
	}
	return string(bytes.TrimSpace(buf.B)), nil
}

func decodeSnapshotEntries(raw []byte) ([]ranking.Entry, error) {
	var payload snapshotPayload
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return nil, crerr.Wrap(err, "decode ranking snapshot payload")
	}
	if payload.Version != snapshotPayloadVersion {
		return nil, crerr.Newf("unsupported ranking snapshot payload version %d", payload.Version)
	}
	if payload.Entries == nil {
		payload.Entries = []ranking.Entry{}
	}
	return payload.Entries, nil
}
