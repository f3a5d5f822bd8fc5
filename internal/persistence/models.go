package persistence

import "time"

// Records are serialized as JSON collections keyed by collection name, so
// field tags keep the on-disk shape stable across refactors.

// Session represents a booked room reservation.
type Session struct {
	ID         string    `json:"id"`
	RoomID     string    `json:"roomId"`
	ArtistID   string    `json:"artistId"`
	AlbumID    *string   `json:"albumId"`
	TrackID    *string   `json:"trackId"`
	EngineerID string    `json:"engineerId"`
	Date       string    `json:"date"`      // YYYY-MM-DD
	StartTime  string    `json:"startTime"` // HH:mm
	EndTime    string    `json:"endTime"`   // HH:mm
	Status     string    `json:"status"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// SessionFilter narrows session queries. Zero values mean "any"; the date
// bounds are inclusive and compared as fixed-width strings.
type SessionFilter struct {
	RoomID     string
	ArtistID   string
	EngineerID string
	Status     string
	DateFrom   string
	DateTo     string
}

// Room represents a bookable studio room.
type Room struct {
	ID           string    `json:"id"`
	StudioID     string    `json:"studioId"`
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	HourlyRate   float64   `json:"hourlyRate"`
	Capacity     int       `json:"capacity"`
	EquipmentIDs []string  `json:"equipmentIds"`
	IsAvailable  bool      `json:"isAvailable"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// RoomFilter narrows room queries.
type RoomFilter struct {
	Type        string
	IsAvailable *bool
}

// Artist represents a recording client.
type Artist struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Genre     string    `json:"genre"`
	Label     string    `json:"label"`
	Bio       string    `json:"bio"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Album represents an album production effort for an artist.
type Album struct {
	ID          string    `json:"id"`
	ArtistID    string    `json:"artistId"`
	Title       string    `json:"title"`
	Genre       string    `json:"genre"`
	ReleaseDate *string   `json:"releaseDate"`
	Status      string    `json:"status"`
	TotalTracks int       `json:"totalTracks"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// AlbumFilter narrows album queries.
type AlbumFilter struct {
	ArtistID string
	Status   string
}

// Track represents a single track on an album.
type Track struct {
	ID              string    `json:"id"`
	AlbumID         string    `json:"albumId"`
	Title           string    `json:"title"`
	DurationSeconds int       `json:"duration"`
	TrackNumber     int       `json:"trackNumber"`
	Status          string    `json:"status"`
	BPM             *int      `json:"bpm"`
	Key             *string   `json:"key"`
	Notes           string    `json:"notes"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Member represents a staff member.
type Member struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Role       string    `json:"role"`
	Speciality string    `json:"speciality"`
	HourlyRate float64   `json:"hourlyRate"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Equipment represents a piece of studio gear, optionally assigned to a room.
type Equipment struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	Brand         string    `json:"brand"`
	Model         string    `json:"model"`
	SerialNumber  string    `json:"serialNumber"`
	PurchaseDate  string    `json:"purchaseDate"`
	PurchasePrice float64   `json:"purchasePrice"`
	Condition     string    `json:"condition"`
	RoomID        *string   `json:"location"`
	IsAvailable   bool      `json:"isAvailable"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// EquipmentFilter narrows equipment queries.
type EquipmentFilter struct {
	Category string
	RoomID   string
}

// InvoiceItem is a single billable line on an invoice.
type InvoiceItem struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// Invoice represents a bill issued to an artist for their sessions.
type Invoice struct {
	ID         string        `json:"id"`
	ArtistID   string        `json:"artistId"`
	SessionIDs []string      `json:"sessionIds"`
	Items      []InvoiceItem `json:"items"`
	Subtotal   float64       `json:"subtotal"`
	Tax        float64       `json:"tax"`
	Total      float64       `json:"total"`
	Currency   string        `json:"currency"`
	Status     string        `json:"status"`
	DueDate    string        `json:"dueDate"`
	PaidDate   *string       `json:"paidDate"`
	Notes      string        `json:"notes"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

// InvoiceFilter narrows invoice queries.
type InvoiceFilter struct {
	ArtistID string
	Status   string
}

// Studio is the singleton describing the facility itself.
type Studio struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Address     string    `json:"address"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	OpenTime    string    `json:"openTime"`  // HH:mm
	CloseTime   string    `json:"closeTime"` // HH:mm
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Settings is the singleton holding billing defaults.
type Settings struct {
	DefaultCurrency string  `json:"defaultCurrency"`
	TaxRate         float64 `json:"taxRate"`
}
