package media

// Track is a stock audio track
type Track struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ArtistName string `json:"artist_name"`
	Audio      string `json:"audio"`
	Image      string `json:"image"`
	Duration   int    `json:"duration"`
}

// Image is a stock photo. WebformatURL is what gets added to the scene.
type Image struct {
	ID           int    `json:"id"`
	PreviewURL   string `json:"previewURL"`
	WebformatURL string `json:"webformatURL"`
	Tags         string `json:"tags"`
	User         string `json:"user"`
}

// Query is a paginated search
type Query struct {
	Text string
	Page int
}

// Results bundles both providers' answers for one query
type Results struct {
	Tracks []Track `json:"tracks"`
	Images []Image `json:"images"`
}

// Default search terms of the menus
const (
	DefaultAudioQuery = "rock"
	DefaultImageQuery = "all"
)

func (q Query) normalized(defaultText string) Query {
	if q.Text == "" {
		q.Text = defaultText
	}
	if q.Page < 1 {
		q.Page = 1
	}
	return q
}
