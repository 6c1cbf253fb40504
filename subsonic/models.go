package subsonic

import "time"

// Child is a song or a directory entry.
type Child struct {
	ID            string     `xml:"id,attr" json:"id"`
	Parent        string     `xml:"parent,attr,omitempty" json:"parent,omitempty"`
	IsDir         bool       `xml:"isDir,attr" json:"isDir"`
	Title         string     `xml:"title,attr" json:"title"`
	Album         string     `xml:"album,attr,omitempty" json:"album,omitempty"`
	Artist        string     `xml:"artist,attr,omitempty" json:"artist,omitempty"`
	Track         *int       `xml:"track,attr,omitempty" json:"track,omitempty"`
	Year          *int       `xml:"year,attr,omitempty" json:"year,omitempty"`
	Genre         string     `xml:"genre,attr,omitempty" json:"genre,omitempty"`
	CoverArt      string     `xml:"coverArt,attr,omitempty" json:"coverArt,omitempty"`
	Size          *int64     `xml:"size,attr,omitempty" json:"size,omitempty"`
	ContentType   string     `xml:"contentType,attr,omitempty" json:"contentType,omitempty"`
	Suffix        string     `xml:"suffix,attr,omitempty" json:"suffix,omitempty"`
	Duration      *int       `xml:"duration,attr,omitempty" json:"duration,omitempty"`
	BitRate       *int       `xml:"bitRate,attr,omitempty" json:"bitRate,omitempty"`
	Path          string     `xml:"path,attr,omitempty" json:"path,omitempty"`
	IsVideo       bool       `xml:"isVideo,attr" json:"isVideo"`
	UserRating    *int       `xml:"userRating,attr,omitempty" json:"userRating,omitempty"`
	AverageRating *float64   `xml:"averageRating,attr,omitempty" json:"averageRating,omitempty"`
	PlayCount     *int       `xml:"playCount,attr,omitempty" json:"playCount,omitempty"`
	DiscNumber    *int       `xml:"discNumber,attr,omitempty" json:"discNumber,omitempty"`
	Created       *time.Time `xml:"created,attr,omitempty" json:"created,omitempty"`
	Starred       *time.Time `xml:"starred,attr,omitempty" json:"starred,omitempty"`
	AlbumID       string     `xml:"albumId,attr,omitempty" json:"albumId,omitempty"`
	ArtistID      string     `xml:"artistId,attr,omitempty" json:"artistId,omitempty"`
	Type          string     `xml:"type,attr,omitempty" json:"type,omitempty"`
}

// AlbumID3 is an album in the tag-based browsing model.
type AlbumID3 struct {
	ID        string     `xml:"id,attr" json:"id"`
	Name      string     `xml:"name,attr" json:"name"`
	Artist    string     `xml:"artist,attr,omitempty" json:"artist,omitempty"`
	ArtistID  string     `xml:"artistId,attr,omitempty" json:"artistId,omitempty"`
	CoverArt  string     `xml:"coverArt,attr,omitempty" json:"coverArt,omitempty"`
	SongCount int        `xml:"songCount,attr" json:"songCount"`
	Duration  int        `xml:"duration,attr" json:"duration"`
	PlayCount *int       `xml:"playCount,attr,omitempty" json:"playCount,omitempty"`
	Created   *time.Time `xml:"created,attr,omitempty" json:"created,omitempty"`
	Starred   *time.Time `xml:"starred,attr,omitempty" json:"starred,omitempty"`
	Year      *int       `xml:"year,attr,omitempty" json:"year,omitempty"`
	Genre     string     `xml:"genre,attr,omitempty" json:"genre,omitempty"`
	Songs     []Child    `xml:"song" json:"song,omitempty"`
}

// ArtistID3 is an artist in the tag-based browsing model.
type ArtistID3 struct {
	ID             string     `xml:"id,attr" json:"id"`
	Name           string     `xml:"name,attr" json:"name"`
	CoverArt       string     `xml:"coverArt,attr,omitempty" json:"coverArt,omitempty"`
	ArtistImageURL string     `xml:"artistImageUrl,attr,omitempty" json:"artistImageUrl,omitempty"`
	AlbumCount     int        `xml:"albumCount,attr" json:"albumCount"`
	Starred        *time.Time `xml:"starred,attr,omitempty" json:"starred,omitempty"`
	Albums         []AlbumID3 `xml:"album" json:"album,omitempty"`
}

// Artist is an artist in the folder-based browsing model.
type Artist struct {
	ID             string     `xml:"id,attr" json:"id"`
	Name           string     `xml:"name,attr" json:"name"`
	ArtistImageURL string     `xml:"artistImageUrl,attr,omitempty" json:"artistImageUrl,omitempty"`
	Starred        *time.Time `xml:"starred,attr,omitempty" json:"starred,omitempty"`
	UserRating     *int       `xml:"userRating,attr,omitempty" json:"userRating,omitempty"`
	AverageRating  *float64   `xml:"averageRating,attr,omitempty" json:"averageRating,omitempty"`
}

type Index struct {
	Name    string   `xml:"name,attr" json:"name"`
	Artists []Artist `xml:"artist" json:"artist,omitempty"`
}

type IndexID3 struct {
	Name    string      `xml:"name,attr" json:"name"`
	Artists []ArtistID3 `xml:"artist" json:"artist,omitempty"`
}

type Indexes struct {
	LastModified    int64   `xml:"lastModified,attr" json:"lastModified"`
	IgnoredArticles string  `xml:"ignoredArticles,attr" json:"ignoredArticles"`
	Indexes         []Index `xml:"index" json:"index,omitempty"`
	Children        []Child `xml:"child" json:"child,omitempty"`
}

type ArtistsID3 struct {
	IgnoredArticles string     `xml:"ignoredArticles,attr" json:"ignoredArticles"`
	Indexes         []IndexID3 `xml:"index" json:"index,omitempty"`
}

type Directory struct {
	ID            string     `xml:"id,attr" json:"id"`
	Parent        string     `xml:"parent,attr,omitempty" json:"parent,omitempty"`
	Name          string     `xml:"name,attr" json:"name"`
	Starred       *time.Time `xml:"starred,attr,omitempty" json:"starred,omitempty"`
	UserRating    *int       `xml:"userRating,attr,omitempty" json:"userRating,omitempty"`
	AverageRating *float64   `xml:"averageRating,attr,omitempty" json:"averageRating,omitempty"`
	PlayCount     *int       `xml:"playCount,attr,omitempty" json:"playCount,omitempty"`
	Children      []Child    `xml:"child" json:"child,omitempty"`
}

type MusicFolder struct {
	ID   string `xml:"id,attr" json:"id"`
	Name string `xml:"name,attr,omitempty" json:"name,omitempty"`
}

type MusicFolders struct {
	Folders []MusicFolder `xml:"musicFolder" json:"musicFolder,omitempty"`
}

// Genre is a genre name with the number of albums and songs tagged with it.
type Genre struct {
	SongCount  int    `xml:"songCount,attr" json:"songCount"`
	AlbumCount int    `xml:"albumCount,attr" json:"albumCount"`
	Value      string `xml:",chardata" json:"value"`
}

type Genres struct {
	Genres []Genre `xml:"genre" json:"genre,omitempty"`
}

type AlbumList struct {
	Albums []Child `xml:"album" json:"album,omitempty"`
}

type AlbumList2 struct {
	Albums []AlbumID3 `xml:"album" json:"album,omitempty"`
}

type SearchResult2 struct {
	Artists []Artist `xml:"artist" json:"artist,omitempty"`
	Albums  []Child  `xml:"album" json:"album,omitempty"`
	Songs   []Child  `xml:"song" json:"song,omitempty"`
}

type SearchResult3 struct {
	Artists []ArtistID3 `xml:"artist" json:"artist,omitempty"`
	Albums  []AlbumID3  `xml:"album" json:"album,omitempty"`
	Songs   []Child     `xml:"song" json:"song,omitempty"`
}

type User struct {
	Username            string   `xml:"username,attr" json:"username"`
	Email               string   `xml:"email,attr,omitempty" json:"email,omitempty"`
	ScrobblingEnabled   bool     `xml:"scrobblingEnabled,attr" json:"scrobblingEnabled"`
	AdminRole           bool     `xml:"adminRole,attr" json:"adminRole"`
	SettingsRole        bool     `xml:"settingsRole,attr" json:"settingsRole"`
	DownloadRole        bool     `xml:"downloadRole,attr" json:"downloadRole"`
	UploadRole          bool     `xml:"uploadRole,attr" json:"uploadRole"`
	PlaylistRole        bool     `xml:"playlistRole,attr" json:"playlistRole"`
	CoverArtRole        bool     `xml:"coverArtRole,attr" json:"coverArtRole"`
	CommentRole         bool     `xml:"commentRole,attr" json:"commentRole"`
	PodcastRole         bool     `xml:"podcastRole,attr" json:"podcastRole"`
	StreamRole          bool     `xml:"streamRole,attr" json:"streamRole"`
	JukeboxRole         bool     `xml:"jukeboxRole,attr" json:"jukeboxRole"`
	ShareRole           bool     `xml:"shareRole,attr" json:"shareRole"`
	VideoConversionRole bool     `xml:"videoConversionRole,attr" json:"videoConversionRole"`
	Folders             []string `xml:"folder" json:"folder,omitempty"`
}

// ArtistInfoBase holds the fields shared by both artist info variants.
type ArtistInfoBase struct {
	Biography      string `xml:"biography,omitempty" json:"biography,omitempty"`
	MusicBrainzID  string `xml:"musicBrainzId,omitempty" json:"musicBrainzId,omitempty"`
	LastFmURL      string `xml:"lastFmUrl,omitempty" json:"lastFmUrl,omitempty"`
	SmallImageURL  string `xml:"smallImageUrl,omitempty" json:"smallImageUrl,omitempty"`
	MediumImageURL string `xml:"mediumImageUrl,omitempty" json:"mediumImageUrl,omitempty"`
	LargeImageURL  string `xml:"largeImageUrl,omitempty" json:"largeImageUrl,omitempty"`
}

type ArtistInfo struct {
	ArtistInfoBase
	SimilarArtists []Artist `xml:"similarArtist" json:"similarArtist,omitempty"`
}

type ArtistInfo2 struct {
	ArtistInfoBase
	SimilarArtists []ArtistID3 `xml:"similarArtist" json:"similarArtist,omitempty"`
}

type License struct {
	Valid          bool       `xml:"valid,attr" json:"valid"`
	Email          string     `xml:"email,attr,omitempty" json:"email,omitempty"`
	LicenseExpires *time.Time `xml:"licenseExpires,attr,omitempty" json:"licenseExpires,omitempty"`
	TrialExpires   *time.Time `xml:"trialExpires,attr,omitempty" json:"trialExpires,omitempty"`
}

// Error is the payload of a failed response.
type Error struct {
	Code    string `xml:"code,attr" json:"code"`
	Message string `xml:"message,attr" json:"message"`
}
