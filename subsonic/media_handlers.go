package subsonic

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/disintegration/imaging"

	"sonicbridge/models"
)

// getCoverArt returns the image of an item, resized to fit a size x size
// square when size is given. Items without an image get 204.
func (p *Plugin) getCoverArt(ctx context.Context, _ AuthenticatedUser, params RequestParams) Result {
	item, res := p.findItem(ctx, params.ID)
	if res != nil {
		return res
	}
	if item.ImagePath == "" {
		return &StatusResult{Code: http.StatusNoContent}
	}

	rc, contentType, err := p.library.OpenImage(ctx, *item)
	if err != nil {
		p.log.Warn().Err(err).Str("id", item.ID).Str("path", item.ImagePath).Msg("Failed to open cover art")
		return &StatusResult{Code: http.StatusNoContent}
	}
	defer rc.Close()

	size := intParam(p.log, "size", params.Size, 0)
	var body []byte
	if size > 0 {
		body, err = resizeImage(rc, contentType, size)
	} else {
		body, err = io.ReadAll(rc)
	}
	if err != nil {
		p.log.Error().Err(err).Str("id", item.ID).Msg("Failed to read cover art")
		return fail(CodeGeneric, "")
	}
	return &BinaryResult{
		ContentType: contentType,
		Name:        item.ID,
		ModTime:     item.Modified,
		Content:     bytes.NewReader(body),
	}
}

func resizeImage(r io.Reader, contentType string, size int) ([]byte, error) {
	img, err := imaging.Decode(r)
	if err != nil {
		return nil, err
	}
	resized := imaging.Fit(img, size, size, imaging.Lanczos)

	var format imaging.Format
	switch contentType {
	case "image/png":
		format = imaging.PNG
	case "image/gif":
		format = imaging.GIF
	case "image/tiff":
		format = imaging.TIFF
	case "image/bmp":
		format = imaging.BMP
	default:
		format = imaging.JPEG
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// download serves both download and stream. Files are sent as stored; no
// transcoding is done.
func (p *Plugin) download(ctx context.Context, _ AuthenticatedUser, params RequestParams) Result {
	song, res := p.findItem(ctx, params.ID, models.KindSong)
	if res != nil {
		return res
	}
	f, err := p.library.OpenMedia(ctx, *song)
	if err != nil {
		p.log.Warn().Err(err).Str("id", song.ID).Str("path", song.Path).Msg("Failed to open media file")
		return &StatusResult{Code: http.StatusNotFound}
	}
	modTime := song.Modified
	if fi, err := f.Stat(); err == nil {
		modTime = fi.ModTime()
	}
	return &BinaryResult{
		ContentType: audioMIMEType(song.Path),
		Name:        song.Path,
		ModTime:     modTime,
		Content:     f,
		Closer:      f,
	}
}
