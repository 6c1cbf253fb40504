package subsonic

//go:generate mockgen -source=library.go -destination=../mock/library_mock.go -package=mock

import (
	"context"
	"io"

	"sonicbridge/models"
)

// Library is the host catalog the bridge reads from. Single-item lookups
// return (nil, nil) when nothing matches; listings return an empty slice.
// A non-nil error means the host could not answer at all.
type Library interface {
	FindUserByName(ctx context.Context, name string) (*models.HostUser, error)
	FindByID(ctx context.Context, id string) (*models.Item, error)

	// QueryChildren lists the direct children of a folder, artist or album.
	QueryChildren(ctx context.Context, parentID string) ([]models.Item, error)
	QueryAlbumsByArtist(ctx context.Context, artistID string) ([]models.Item, error)
	// QueryArtists and QueryAllSongs take an empty folderID to mean every
	// music folder.
	QueryArtists(ctx context.Context, folderID string) ([]models.Item, error)
	QueryAllSongs(ctx context.Context, folderID string) ([]models.Item, error)
	QueryFolders(ctx context.Context) ([]models.Item, error)
	QueryAlbums(ctx context.Context, q models.AlbumQuery) ([]models.Item, error)
	Search(ctx context.Context, q models.SearchQuery) ([]models.Item, error)

	// OpenImage returns the cover image of item and its MIME type.
	OpenImage(ctx context.Context, item models.Item) (io.ReadCloser, string, error)
	// OpenMedia opens the audio file behind a song.
	OpenMedia(ctx context.Context, item models.Item) (models.MediaFile, error)
}
