package subsonic

import (
	"bytes"
	"encoding/xml"
	"fmt"

	json "github.com/goccy/go-json"
)

const (
	// Version is the Subsonic REST protocol version the bridge speaks.
	Version = "1.16.1"

	namespace    = "http://subsonic.org/restapi"
	rootElement  = "subsonic-response"
	statusOK     = "ok"
	statusFailed = "failed"
)

// ResponseData is the payload slot of an Envelope. The set of
// implementations is closed; see wireName.
type ResponseData interface {
	responseData()
}

func (*AlbumID3) responseData()      {}
func (*ArtistID3) responseData()     {}
func (*ArtistsID3) responseData()    {}
func (*License) responseData()       {}
func (*Child) responseData()         {}
func (*MusicFolders) responseData()  {}
func (*Directory) responseData()     {}
func (*Error) responseData()         {}
func (*Genres) responseData()        {}
func (*Indexes) responseData()       {}
func (*AlbumList) responseData()     {}
func (*AlbumList2) responseData()    {}
func (*SearchResult2) responseData() {}
func (*SearchResult3) responseData() {}
func (*User) responseData()          {}
func (*ArtistInfo) responseData()    {}
func (*ArtistInfo2) responseData()   {}

// wireName is the element name (XML) and property name (JSON) of a payload.
// Both serializers read it from here.
func wireName(d ResponseData) string {
	switch d.(type) {
	case *AlbumID3:
		return "album"
	case *ArtistID3:
		return "artist"
	case *ArtistsID3:
		return "artists"
	case *License:
		return "license"
	case *Child:
		return "song"
	case *MusicFolders:
		return "musicFolders"
	case *Directory:
		return "directory"
	case *Error:
		return "error"
	case *Genres:
		return "genres"
	case *Indexes:
		return "indexes"
	case *AlbumList:
		return "albumList"
	case *AlbumList2:
		return "albumList2"
	case *SearchResult2:
		return "searchResult2"
	case *SearchResult3:
		return "searchResult3"
	case *User:
		return "user"
	case *ArtistInfo:
		return "artistInfo"
	case *ArtistInfo2:
		return "artistInfo2"
	}
	panic(fmt.Sprintf("subsonic: no wire name for %T", d))
}

// Envelope is the subsonic-response document. Data may be nil.
type Envelope struct {
	Status  string
	Version string
	Data    ResponseData
}

// NewEnvelope returns a successful envelope carrying data.
func NewEnvelope(data ResponseData) *Envelope {
	return &Envelope{Status: statusOK, Version: Version, Data: data}
}

// NewErrorEnvelope returns a failed envelope. An empty message is replaced
// by the default text for code.
func NewErrorEnvelope(code ErrorCode, message string) *Envelope {
	if message == "" {
		message = code.defaultMessage()
	}
	return &Envelope{
		Status:  statusFailed,
		Version: Version,
		Data:    &Error{Code: code.String(), Message: message},
	}
}

// MarshalXML writes the envelope as an unprefixed element in the Subsonic
// namespace with the payload as its only child.
func (e *Envelope) MarshalXML(enc *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{
		Name: xml.Name{Space: namespace, Local: rootElement},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "status"}, Value: e.Status},
			{Name: xml.Name{Local: "version"}, Value: e.Version},
		},
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if e.Data != nil {
		child := xml.StartElement{Name: xml.Name{Local: wireName(e.Data)}}
		if err := enc.EncodeElement(e.Data, child); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

// MarshalJSON wraps the envelope in a single subsonic-response object.
func (e *Envelope) MarshalJSON() ([]byte, error) {
	inner := map[string]any{
		"status":  e.Status,
		"version": e.Version,
	}
	if e.Data != nil {
		inner[wireName(e.Data)] = e.Data
	}
	return json.Marshal(map[string]any{rootElement: inner})
}

// Serialize renders e in the given format.
func Serialize(e *Envelope, f Format) ([]byte, error) {
	if f == FormatJSON {
		return json.Marshal(e)
	}
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	if err := xml.NewEncoder(&buf).Encode(e); err != nil {
		return nil, fmt.Errorf("encode xml envelope: %w", err)
	}
	return buf.Bytes(), nil
}

// ContentType returns the MIME type of envelopes serialized as f.
func (f Format) ContentType() string {
	if f == FormatJSON {
		return "application/json; charset=utf-8"
	}
	return "application/xml; charset=utf-8"
}
