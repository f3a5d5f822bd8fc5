package application

import (
	"encoding/json"
	"time"

	"github.com/example/sounddesk/internal/scheduler"
)

// Optional represents a patch field that distinguishes "absent" (leave the
// stored value alone) from "present but null" (clear the stored value).
type Optional[T any] struct {
	Set   bool
	Value *T
}

// UnmarshalJSON marks the field as present and decodes its value; a JSON
// null yields a nil Value.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	o.Value = &value
	return nil
}

// --- Sessions ---

// Session represents a booked room reservation.
type Session struct {
	ID         string
	RoomID     string
	ArtistID   string
	AlbumID    *string
	TrackID    *string
	EngineerID string
	Date       string // YYYY-MM-DD
	StartTime  string // HH:mm
	EndTime    string // HH:mm
	Status     scheduler.Status
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SessionInput captures caller provided fields for creating a session.
// Status may be left empty, in which case the session starts out scheduled.
type SessionInput struct {
	RoomID     string
	ArtistID   string
	AlbumID    *string
	TrackID    *string
	EngineerID string
	Date       string
	StartTime  string
	EndTime    string
	Status     scheduler.Status
	Notes      string
}

// SessionPatch carries the optional field set merged onto an existing
// session by UpdateSession. Status is deliberately absent: status flips go
// through SetSessionStatus, which enforces the lifecycle edges.
type SessionPatch struct {
	RoomID     Optional[string]
	ArtistID   Optional[string]
	AlbumID    Optional[string]
	TrackID    Optional[string]
	EngineerID Optional[string]
	Date       Optional[string]
	StartTime  Optional[string]
	EndTime    Optional[string]
	Notes      Optional[string]
}

// SessionFilter narrows session listings. Zero values mean "any"; the date
// bounds are inclusive.
type SessionFilter struct {
	RoomID     string
	ArtistID   string
	EngineerID string
	Status     scheduler.Status
	DateFrom   string
	DateTo     string
}

// AvailabilityQuery describes a candidate slot for a conflict probe.
// ExcludeID, when non-empty, removes that session from the comparison set so
// an update is not reported as conflicting with itself.
type AvailabilityQuery struct {
	RoomID    string
	Date      string
	StartTime string
	EndTime   string
	ExcludeID string
}

// --- Rooms ---

// RoomType classifies what a room is equipped for.
type RoomType string

const (
	RoomTypeRecording RoomType = "recording"
	RoomTypeMixing    RoomType = "mixing"
	RoomTypeMastering RoomType = "mastering"
	RoomTypeRehearsal RoomType = "rehearsal"
)

// ValidRoomType reports whether the value is a known room type.
func ValidRoomType(value RoomType) bool {
	switch value {
	case RoomTypeRecording, RoomTypeMixing, RoomTypeMastering, RoomTypeRehearsal:
		return true
	}
	return false
}

// Room represents a bookable studio room.
type Room struct {
	ID           string
	StudioID     string
	Name         string
	Type         RoomType
	HourlyRate   float64
	Capacity     int
	EquipmentIDs []string
	IsAvailable  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RoomInput captures caller provided room fields.
type RoomInput struct {
	StudioID     string
	Name         string
	Type         RoomType
	HourlyRate   float64
	Capacity     int
	EquipmentIDs []string
	IsAvailable  bool
}

// RoomFilter narrows room listings.
type RoomFilter struct {
	Type        RoomType
	IsAvailable *bool
}

// --- Artists ---

// Artist represents a recording client.
type Artist struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Genre     string
	Label     string
	Bio       string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ArtistInput captures caller provided artist fields.
type ArtistInput struct {
	Name  string
	Email string
	Phone string
	Genre string
	Label string
	Bio   string
}

// --- Albums ---

// AlbumStatus tracks an album through production.
type AlbumStatus string

const (
	AlbumStatusPlanning  AlbumStatus = "planning"
	AlbumStatusRecording AlbumStatus = "recording"
	AlbumStatusMixing    AlbumStatus = "mixing"
	AlbumStatusMastering AlbumStatus = "mastering"
	AlbumStatusReleased  AlbumStatus = "released"
)

// ValidAlbumStatus reports whether the value is a known album status.
func ValidAlbumStatus(value AlbumStatus) bool {
	switch value {
	case AlbumStatusPlanning, AlbumStatusRecording, AlbumStatusMixing, AlbumStatusMastering, AlbumStatusReleased:
		return true
	}
	return false
}

// Album represents an album production effort for an artist.
type Album struct {
	ID          string
	ArtistID    string
	Title       string
	Genre       string
	ReleaseDate *string
	Status      AlbumStatus
	TotalTracks int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AlbumInput captures caller provided album fields.
type AlbumInput struct {
	ArtistID    string
	Title       string
	Genre       string
	ReleaseDate *string
	Status      AlbumStatus
	TotalTracks int
}

// AlbumFilter narrows album listings.
type AlbumFilter struct {
	ArtistID string
	Status   AlbumStatus
}

// --- Tracks ---

// TrackStatus tracks a track through production.
type TrackStatus string

const (
	TrackStatusPending   TrackStatus = "pending"
	TrackStatusRecording TrackStatus = "recording"
	TrackStatusRecorded  TrackStatus = "recorded"
	TrackStatusMixing    TrackStatus = "mixing"
	TrackStatusMixed     TrackStatus = "mixed"
	TrackStatusMastered  TrackStatus = "mastered"
	TrackStatusFinal     TrackStatus = "final"
)

// ValidTrackStatus reports whether the value is a known track status.
func ValidTrackStatus(value TrackStatus) bool {
	switch value {
	case TrackStatusPending, TrackStatusRecording, TrackStatusRecorded,
		TrackStatusMixing, TrackStatusMixed, TrackStatusMastered, TrackStatusFinal:
		return true
	}
	return false
}

// Track represents a single track on an album.
type Track struct {
	ID              string
	AlbumID         string
	Title           string
	DurationSeconds int
	TrackNumber     int
	Status          TrackStatus
	BPM             *int
	Key             *string
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TrackInput captures caller provided track fields.
type TrackInput struct {
	AlbumID         string
	Title           string
	DurationSeconds int
	TrackNumber     int
	Status          TrackStatus
	BPM             *int
	Key             *string
	Notes           string
}

// --- Members ---

// MemberRole classifies staff members.
type MemberRole string

const (
	MemberRoleOwner     MemberRole = "owner"
	MemberRoleEngineer  MemberRole = "engineer"
	MemberRoleAssistant MemberRole = "assistant"
	MemberRoleIntern    MemberRole = "intern"
)

// ValidMemberRole reports whether the value is a known staff role.
func ValidMemberRole(value MemberRole) bool {
	switch value {
	case MemberRoleOwner, MemberRoleEngineer, MemberRoleAssistant, MemberRoleIntern:
		return true
	}
	return false
}

// MemberSpeciality classifies what a staff member specialises in.
type MemberSpeciality string

const (
	SpecialityRecording MemberSpeciality = "recording"
	SpecialityMixing    MemberSpeciality = "mixing"
	SpecialityMastering MemberSpeciality = "mastering"
	SpecialityGeneral   MemberSpeciality = "general"
)

// ValidMemberSpeciality reports whether the value is a known speciality.
func ValidMemberSpeciality(value MemberSpeciality) bool {
	switch value {
	case SpecialityRecording, SpecialityMixing, SpecialityMastering, SpecialityGeneral:
		return true
	}
	return false
}

// Member represents a staff member.
type Member struct {
	ID         string
	Name       string
	Email      string
	Phone      string
	Role       MemberRole
	Speciality MemberSpeciality
	HourlyRate float64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// MemberInput captures caller provided staff fields.
type MemberInput struct {
	Name       string
	Email      string
	Phone      string
	Role       MemberRole
	Speciality MemberSpeciality
	HourlyRate float64
}

// --- Equipment ---

// EquipmentCategory classifies studio gear.
type EquipmentCategory string

const (
	EquipmentMicrophone EquipmentCategory = "microphone"
	EquipmentHeadphone  EquipmentCategory = "headphone"
	EquipmentMonitor    EquipmentCategory = "monitor"
	EquipmentMixer      EquipmentCategory = "mixer"
	EquipmentInterface  EquipmentCategory = "interface"
	EquipmentInstrument EquipmentCategory = "instrument"
	EquipmentCable      EquipmentCategory = "cable"
	EquipmentOther      EquipmentCategory = "other"
)

// ValidEquipmentCategory reports whether the value is a known category.
func ValidEquipmentCategory(value EquipmentCategory) bool {
	switch value {
	case EquipmentMicrophone, EquipmentHeadphone, EquipmentMonitor, EquipmentMixer,
		EquipmentInterface, EquipmentInstrument, EquipmentCable, EquipmentOther:
		return true
	}
	return false
}

// EquipmentCondition grades the physical state of gear.
type EquipmentCondition string

const (
	ConditionExcellent EquipmentCondition = "excellent"
	ConditionGood      EquipmentCondition = "good"
	ConditionFair      EquipmentCondition = "fair"
	ConditionPoor      EquipmentCondition = "poor"
)

// ValidEquipmentCondition reports whether the value is a known condition.
func ValidEquipmentCondition(value EquipmentCondition) bool {
	switch value {
	case ConditionExcellent, ConditionGood, ConditionFair, ConditionPoor:
		return true
	}
	return false
}

// Equipment represents a piece of studio gear, optionally assigned to a room.
type Equipment struct {
	ID            string
	Name          string
	Category      EquipmentCategory
	Brand         string
	Model         string
	SerialNumber  string
	PurchaseDate  string
	PurchasePrice float64
	Condition     EquipmentCondition
	RoomID        *string
	IsAvailable   bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// EquipmentInput captures caller provided gear fields.
type EquipmentInput struct {
	Name          string
	Category      EquipmentCategory
	Brand         string
	Model         string
	SerialNumber  string
	PurchaseDate  string
	PurchasePrice float64
	Condition     EquipmentCondition
	RoomID        *string
	IsAvailable   bool
}

// EquipmentFilter narrows equipment listings.
type EquipmentFilter struct {
	Category EquipmentCategory
	RoomID   string
}

// --- Invoices ---

// InvoiceStatus tracks an invoice through billing.
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusSent      InvoiceStatus = "sent"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// ValidInvoiceStatus reports whether the value is a known invoice status.
func ValidInvoiceStatus(value InvoiceStatus) bool {
	switch value {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusCancelled:
		return true
	}
	return false
}

// Currency enumerates the supported billing currencies.
type Currency string

const (
	CurrencyKRW Currency = "KRW"
	CurrencyUSD Currency = "USD"
)

// ValidCurrency reports whether the value is a supported currency.
func ValidCurrency(value Currency) bool {
	return value == CurrencyKRW || value == CurrencyUSD
}

// InvoiceItem is a single billable line on an invoice.
type InvoiceItem struct {
	Label  string
	Amount float64
}

// Invoice represents a bill issued to an artist for their sessions.
type Invoice struct {
	ID         string
	ArtistID   string
	SessionIDs []string
	Items      []InvoiceItem
	Subtotal   float64
	Tax        float64
	Total      float64
	Currency   Currency
	Status     InvoiceStatus
	DueDate    string
	PaidDate   *string
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// InvoiceInput captures caller provided invoice fields.
type InvoiceInput struct {
	ArtistID   string
	SessionIDs []string
	Items      []InvoiceItem
	Subtotal   float64
	Tax        float64
	Total      float64
	Currency   Currency
	Status     InvoiceStatus
	DueDate    string
	PaidDate   *string
	Notes      string
}

// InvoiceFilter narrows invoice listings.
type InvoiceFilter struct {
	ArtistID string
	Status   InvoiceStatus
}

// InvoiceCalculation is the result of deriving line items from sessions.
type InvoiceCalculation struct {
	Items    []InvoiceItem
	Subtotal float64
	Tax      float64
	Total    float64
	Currency Currency
}

// --- Studio / settings singletons ---

// Studio is the profile of the facility itself.
type Studio struct {
	ID          string
	Name        string
	Description string
	Address     string
	Phone       string
	Email       string
	OpenTime    string // HH:mm
	CloseTime   string // HH:mm
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StudioInput captures caller provided studio profile fields.
type StudioInput struct {
	Name        string
	Description string
	Address     string
	Phone       string
	Email       string
	OpenTime    string
	CloseTime   string
}

// Settings holds the billing defaults.
type Settings struct {
	DefaultCurrency Currency
	TaxRate         float64
}
