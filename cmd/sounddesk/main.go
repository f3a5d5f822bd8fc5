package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/example/sounddesk/internal/application"
	"github.com/example/sounddesk/internal/config"
	httptransport "github.com/example/sounddesk/internal/http"
	"github.com/example/sounddesk/internal/metrics"
	"github.com/example/sounddesk/internal/persistence"
	"github.com/example/sounddesk/internal/persistence/sqlite"
	"github.com/example/sounddesk/internal/scheduler"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	storage, err := sqlite.Open(cfg.SQLitePath)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := storage.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	idGenerator := uuid.NewString
	now := time.Now
	instruments := metrics.New()

	sessionRepo := newSessionRepositoryAdapter(storage)
	roomRepo := newRoomRepositoryAdapter(storage)
	artistRepo := newArtistRepositoryAdapter(storage)
	albumRepo := newAlbumRepositoryAdapter(storage)
	trackRepo := newTrackRepositoryAdapter(storage)
	memberRepo := newMemberRepositoryAdapter(storage)
	equipmentRepo := newEquipmentRepositoryAdapter(storage)
	invoiceRepo := newInvoiceRepositoryAdapter(storage)
	singletonStore := newSingletonStoreAdapter(storage)

	sessionService := application.NewSessionServiceWithLogger(sessionRepo, idGenerator, now, logger)
	sessionService.SetBookingRecorder(instruments)
	roomService := application.NewRoomServiceWithLogger(roomRepo, idGenerator, now, logger)
	artistService := application.NewArtistServiceWithLogger(artistRepo, idGenerator, now, logger)
	albumService := application.NewAlbumServiceWithLogger(albumRepo, idGenerator, now, logger)
	trackService := application.NewTrackServiceWithLogger(trackRepo, idGenerator, now, logger)
	memberService := application.NewMemberServiceWithLogger(memberRepo, idGenerator, now, logger)
	equipmentService := application.NewEquipmentServiceWithLogger(equipmentRepo, idGenerator, now, logger)
	studioService := application.NewStudioServiceWithLogger(singletonStore, application.Settings{
		DefaultCurrency: application.Currency(cfg.DefaultCurrency),
		TaxRate:         cfg.TaxRate,
	}, idGenerator, now, logger)
	invoiceService := application.NewInvoiceServiceWithLogger(invoiceRepo, sessionService, roomService, memberService, studioService, idGenerator, now, logger)
	dashboardService := application.NewDashboardServiceWithLogger(sessionService, invoiceService, albumService, roomService, studioService, now, logger)

	seedStudioProfile(ctx, logger, studioService, cfg)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Sessions:  httptransport.NewSessionHandler(sessionService, logger),
		Rooms:     httptransport.NewRoomHandler(roomService, logger),
		Artists:   httptransport.NewArtistHandler(artistService, logger),
		Albums:    httptransport.NewAlbumHandler(albumService, logger),
		Tracks:    httptransport.NewTrackHandler(trackService, logger),
		Members:   httptransport.NewMemberHandler(memberService, logger),
		Equipment: httptransport.NewEquipmentHandler(equipmentService, logger),
		Invoices:  httptransport.NewInvoiceHandler(invoiceService, logger),
		Studio:    httptransport.NewStudioHandler(studioService, logger),
		Dashboard: httptransport.NewDashboardHandler(dashboardService, logger),
		Metrics:   instruments.Handler(),
		Middleware: []func(http.Handler) http.Handler{
			httptransport.RequestLogger(logger),
			httptransport.RequestMetrics(instruments),
		},
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("sounddesk API listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}

// seedStudioProfile writes a minimal studio profile carrying the configured
// operating hours on first run, so room-utilization reporting has real
// bounds before anyone edits the profile through the API.
func seedStudioProfile(ctx context.Context, logger *slog.Logger, studios *application.StudioService, cfg config.Config) {
	if _, err := studios.GetStudio(ctx); err == nil || !errors.Is(err, application.ErrNotFound) {
		return
	}
	_, err := studios.UpdateStudio(ctx, application.StudioInput{
		Name:      "SoundDesk",
		OpenTime:  cfg.OpenTime,
		CloseTime: cfg.CloseTime,
	})
	if err != nil {
		logger.Warn("failed to seed studio profile", "error", err)
	}
}

type sessionRepositoryAdapter struct {
	repo persistence.SessionRepository
}

func newSessionRepositoryAdapter(repo persistence.SessionRepository) *sessionRepositoryAdapter {
	return &sessionRepositoryAdapter{repo: repo}
}

func (a *sessionRepositoryAdapter) CreateSession(ctx context.Context, session application.Session) (application.Session, error) {
	if err := a.repo.CreateSession(ctx, toPersistenceSession(session)); err != nil {
		return application.Session{}, err
	}
	stored, err := a.repo.GetSession(ctx, session.ID)
	if err != nil {
		return application.Session{}, err
	}
	return toApplicationSession(stored), nil
}

func (a *sessionRepositoryAdapter) GetSession(ctx context.Context, id string) (application.Session, error) {
	stored, err := a.repo.GetSession(ctx, id)
	if err != nil {
		return application.Session{}, err
	}
	return toApplicationSession(stored), nil
}

func (a *sessionRepositoryAdapter) UpdateSession(ctx context.Context, session application.Session) (application.Session, error) {
	if err := a.repo.UpdateSession(ctx, toPersistenceSession(session)); err != nil {
		return application.Session{}, err
	}
	stored, err := a.repo.GetSession(ctx, session.ID)
	if err != nil {
		return application.Session{}, err
	}
	return toApplicationSession(stored), nil
}

func (a *sessionRepositoryAdapter) DeleteSession(ctx context.Context, id string) error {
	return a.repo.DeleteSession(ctx, id)
}

func (a *sessionRepositoryAdapter) ListSessions(ctx context.Context, filter application.SessionFilter) ([]application.Session, error) {
	models, err := a.repo.ListSessions(ctx, persistence.SessionFilter{
		RoomID:     filter.RoomID,
		ArtistID:   filter.ArtistID,
		EngineerID: filter.EngineerID,
		Status:     string(filter.Status),
		DateFrom:   filter.DateFrom,
		DateTo:     filter.DateTo,
	})
	if err != nil {
		return nil, err
	}
	sessions := make([]application.Session, 0, len(models))
	for _, model := range models {
		sessions = append(sessions, toApplicationSession(model))
	}
	return sessions, nil
}

type roomRepositoryAdapter struct {
	repo persistence.RoomRepository
}

func newRoomRepositoryAdapter(repo persistence.RoomRepository) *roomRepositoryAdapter {
	return &roomRepositoryAdapter{repo: repo}
}

func (a *roomRepositoryAdapter) CreateRoom(ctx context.Context, room application.Room) (application.Room, error) {
	if err := a.repo.CreateRoom(ctx, toPersistenceRoom(room)); err != nil {
		return application.Room{}, err
	}
	stored, err := a.repo.GetRoom(ctx, room.ID)
	if err != nil {
		return application.Room{}, err
	}
	return toApplicationRoom(stored), nil
}

func (a *roomRepositoryAdapter) GetRoom(ctx context.Context, id string) (application.Room, error) {
	stored, err := a.repo.GetRoom(ctx, id)
	if err != nil {
		return application.Room{}, err
	}
	return toApplicationRoom(stored), nil
}

func (a *roomRepositoryAdapter) UpdateRoom(ctx context.Context, room application.Room) (application.Room, error) {
	if err := a.repo.UpdateRoom(ctx, toPersistenceRoom(room)); err != nil {
		return application.Room{}, err
	}
	stored, err := a.repo.GetRoom(ctx, room.ID)
	if err != nil {
		return application.Room{}, err
	}
	return toApplicationRoom(stored), nil
}

func (a *roomRepositoryAdapter) DeleteRoom(ctx context.Context, id string) error {
	return a.repo.DeleteRoom(ctx, id)
}

func (a *roomRepositoryAdapter) ListRooms(ctx context.Context, filter application.RoomFilter) ([]application.Room, error) {
	models, err := a.repo.ListRooms(ctx, persistence.RoomFilter{
		Type:        string(filter.Type),
		IsAvailable: filter.IsAvailable,
	})
	if err != nil {
		return nil, err
	}
	rooms := make([]application.Room, 0, len(models))
	for _, model := range models {
		rooms = append(rooms, toApplicationRoom(model))
	}
	return rooms, nil
}

type artistRepositoryAdapter struct {
	repo persistence.ArtistRepository
}

func newArtistRepositoryAdapter(repo persistence.ArtistRepository) *artistRepositoryAdapter {
	return &artistRepositoryAdapter{repo: repo}
}

func (a *artistRepositoryAdapter) CreateArtist(ctx context.Context, artist application.Artist) (application.Artist, error) {
	if err := a.repo.CreateArtist(ctx, toPersistenceArtist(artist)); err != nil {
		return application.Artist{}, err
	}
	stored, err := a.repo.GetArtist(ctx, artist.ID)
	if err != nil {
		return application.Artist{}, err
	}
	return toApplicationArtist(stored), nil
}

func (a *artistRepositoryAdapter) GetArtist(ctx context.Context, id string) (application.Artist, error) {
	stored, err := a.repo.GetArtist(ctx, id)
	if err != nil {
		return application.Artist{}, err
	}
	return toApplicationArtist(stored), nil
}

func (a *artistRepositoryAdapter) UpdateArtist(ctx context.Context, artist application.Artist) (application.Artist, error) {
	if err := a.repo.UpdateArtist(ctx, toPersistenceArtist(artist)); err != nil {
		return application.Artist{}, err
	}
	stored, err := a.repo.GetArtist(ctx, artist.ID)
	if err != nil {
		return application.Artist{}, err
	}
	return toApplicationArtist(stored), nil
}

func (a *artistRepositoryAdapter) DeleteArtist(ctx context.Context, id string) error {
	return a.repo.DeleteArtist(ctx, id)
}

func (a *artistRepositoryAdapter) ListArtists(ctx context.Context) ([]application.Artist, error) {
	models, err := a.repo.ListArtists(ctx)
	if err != nil {
		return nil, err
	}
	artists := make([]application.Artist, 0, len(models))
	for _, model := range models {
		artists = append(artists, toApplicationArtist(model))
	}
	return artists, nil
}

type albumRepositoryAdapter struct {
	repo persistence.AlbumRepository
}

func newAlbumRepositoryAdapter(repo persistence.AlbumRepository) *albumRepositoryAdapter {
	return &albumRepositoryAdapter{repo: repo}
}

func (a *albumRepositoryAdapter) CreateAlbum(ctx context.Context, album application.Album) (application.Album, error) {
	if err := a.repo.CreateAlbum(ctx, toPersistenceAlbum(album)); err != nil {
		return application.Album{}, err
	}
	stored, err := a.repo.GetAlbum(ctx, album.ID)
	if err != nil {
		return application.Album{}, err
	}
	return toApplicationAlbum(stored), nil
}

func (a *albumRepositoryAdapter) GetAlbum(ctx context.Context, id string) (application.Album, error) {
	stored, err := a.repo.GetAlbum(ctx, id)
	if err != nil {
		return application.Album{}, err
	}
	return toApplicationAlbum(stored), nil
}

func (a *albumRepositoryAdapter) UpdateAlbum(ctx context.Context, album application.Album) (application.Album, error) {
	if err := a.repo.UpdateAlbum(ctx, toPersistenceAlbum(album)); err != nil {
		return application.Album{}, err
	}
	stored, err := a.repo.GetAlbum(ctx, album.ID)
	if err != nil {
		return application.Album{}, err
	}
	return toApplicationAlbum(stored), nil
}

func (a *albumRepositoryAdapter) DeleteAlbum(ctx context.Context, id string) error {
	return a.repo.DeleteAlbum(ctx, id)
}

func (a *albumRepositoryAdapter) ListAlbums(ctx context.Context, filter application.AlbumFilter) ([]application.Album, error) {
	models, err := a.repo.ListAlbums(ctx, persistence.AlbumFilter{
		ArtistID: filter.ArtistID,
		Status:   string(filter.Status),
	})
	if err != nil {
		return nil, err
	}
	albums := make([]application.Album, 0, len(models))
	for _, model := range models {
		albums = append(albums, toApplicationAlbum(model))
	}
	return albums, nil
}

type trackRepositoryAdapter struct {
	repo persistence.TrackRepository
}

func newTrackRepositoryAdapter(repo persistence.TrackRepository) *trackRepositoryAdapter {
	return &trackRepositoryAdapter{repo: repo}
}

func (a *trackRepositoryAdapter) CreateTrack(ctx context.Context, track application.Track) (application.Track, error) {
	if err := a.repo.CreateTrack(ctx, toPersistenceTrack(track)); err != nil {
		return application.Track{}, err
	}
	stored, err := a.repo.GetTrack(ctx, track.ID)
	if err != nil {
		return application.Track{}, err
	}
	return toApplicationTrack(stored), nil
}

func (a *trackRepositoryAdapter) GetTrack(ctx context.Context, id string) (application.Track, error) {
	stored, err := a.repo.GetTrack(ctx, id)
	if err != nil {
		return application.Track{}, err
	}
	return toApplicationTrack(stored), nil
}

func (a *trackRepositoryAdapter) UpdateTrack(ctx context.Context, track application.Track) (application.Track, error) {
	if err := a.repo.UpdateTrack(ctx, toPersistenceTrack(track)); err != nil {
		return application.Track{}, err
	}
	stored, err := a.repo.GetTrack(ctx, track.ID)
	if err != nil {
		return application.Track{}, err
	}
	return toApplicationTrack(stored), nil
}

func (a *trackRepositoryAdapter) DeleteTrack(ctx context.Context, id string) error {
	return a.repo.DeleteTrack(ctx, id)
}

func (a *trackRepositoryAdapter) ListTracks(ctx context.Context, albumID string) ([]application.Track, error) {
	models, err := a.repo.ListTracks(ctx, albumID)
	if err != nil {
		return nil, err
	}
	tracks := make([]application.Track, 0, len(models))
	for _, model := range models {
		tracks = append(tracks, toApplicationTrack(model))
	}
	return tracks, nil
}

type memberRepositoryAdapter struct {
	repo persistence.MemberRepository
}

func newMemberRepositoryAdapter(repo persistence.MemberRepository) *memberRepositoryAdapter {
	return &memberRepositoryAdapter{repo: repo}
}

func (a *memberRepositoryAdapter) CreateMember(ctx context.Context, member application.Member) (application.Member, error) {
	if err := a.repo.CreateMember(ctx, toPersistenceMember(member)); err != nil {
		return application.Member{}, err
	}
	stored, err := a.repo.GetMember(ctx, member.ID)
	if err != nil {
		return application.Member{}, err
	}
	return toApplicationMember(stored), nil
}

func (a *memberRepositoryAdapter) GetMember(ctx context.Context, id string) (application.Member, error) {
	stored, err := a.repo.GetMember(ctx, id)
	if err != nil {
		return application.Member{}, err
	}
	return toApplicationMember(stored), nil
}

func (a *memberRepositoryAdapter) UpdateMember(ctx context.Context, member application.Member) (application.Member, error) {
	if err := a.repo.UpdateMember(ctx, toPersistenceMember(member)); err != nil {
		return application.Member{}, err
	}
	stored, err := a.repo.GetMember(ctx, member.ID)
	if err != nil {
		return application.Member{}, err
	}
	return toApplicationMember(stored), nil
}

func (a *memberRepositoryAdapter) DeleteMember(ctx context.Context, id string) error {
	return a.repo.DeleteMember(ctx, id)
}

func (a *memberRepositoryAdapter) ListMembers(ctx context.Context, role string) ([]application.Member, error) {
	models, err := a.repo.ListMembers(ctx, role)
	if err != nil {
		return nil, err
	}
	members := make([]application.Member, 0, len(models))
	for _, model := range models {
		members = append(members, toApplicationMember(model))
	}
	return members, nil
}

type equipmentRepositoryAdapter struct {
	repo persistence.EquipmentRepository
}

func newEquipmentRepositoryAdapter(repo persistence.EquipmentRepository) *equipmentRepositoryAdapter {
	return &equipmentRepositoryAdapter{repo: repo}
}

func (a *equipmentRepositoryAdapter) CreateEquipment(ctx context.Context, equipment application.Equipment) (application.Equipment, error) {
	if err := a.repo.CreateEquipment(ctx, toPersistenceEquipment(equipment)); err != nil {
		return application.Equipment{}, err
	}
	stored, err := a.repo.GetEquipment(ctx, equipment.ID)
	if err != nil {
		return application.Equipment{}, err
	}
	return toApplicationEquipment(stored), nil
}

func (a *equipmentRepositoryAdapter) GetEquipment(ctx context.Context, id string) (application.Equipment, error) {
	stored, err := a.repo.GetEquipment(ctx, id)
	if err != nil {
		return application.Equipment{}, err
	}
	return toApplicationEquipment(stored), nil
}

func (a *equipmentRepositoryAdapter) UpdateEquipment(ctx context.Context, equipment application.Equipment) (application.Equipment, error) {
	if err := a.repo.UpdateEquipment(ctx, toPersistenceEquipment(equipment)); err != nil {
		return application.Equipment{}, err
	}
	stored, err := a.repo.GetEquipment(ctx, equipment.ID)
	if err != nil {
		return application.Equipment{}, err
	}
	return toApplicationEquipment(stored), nil
}

func (a *equipmentRepositoryAdapter) DeleteEquipment(ctx context.Context, id string) error {
	return a.repo.DeleteEquipment(ctx, id)
}

func (a *equipmentRepositoryAdapter) ListEquipment(ctx context.Context, filter application.EquipmentFilter) ([]application.Equipment, error) {
	models, err := a.repo.ListEquipment(ctx, persistence.EquipmentFilter{
		Category: string(filter.Category),
		RoomID:   filter.RoomID,
	})
	if err != nil {
		return nil, err
	}
	equipment := make([]application.Equipment, 0, len(models))
	for _, model := range models {
		equipment = append(equipment, toApplicationEquipment(model))
	}
	return equipment, nil
}

type invoiceRepositoryAdapter struct {
	repo persistence.InvoiceRepository
}

func newInvoiceRepositoryAdapter(repo persistence.InvoiceRepository) *invoiceRepositoryAdapter {
	return &invoiceRepositoryAdapter{repo: repo}
}

func (a *invoiceRepositoryAdapter) CreateInvoice(ctx context.Context, invoice application.Invoice) (application.Invoice, error) {
	if err := a.repo.CreateInvoice(ctx, toPersistenceInvoice(invoice)); err != nil {
		return application.Invoice{}, err
	}
	stored, err := a.repo.GetInvoice(ctx, invoice.ID)
	if err != nil {
		return application.Invoice{}, err
	}
	return toApplicationInvoice(stored), nil
}

func (a *invoiceRepositoryAdapter) GetInvoice(ctx context.Context, id string) (application.Invoice, error) {
	stored, err := a.repo.GetInvoice(ctx, id)
	if err != nil {
		return application.Invoice{}, err
	}
	return toApplicationInvoice(stored), nil
}

func (a *invoiceRepositoryAdapter) UpdateInvoice(ctx context.Context, invoice application.Invoice) (application.Invoice, error) {
	if err := a.repo.UpdateInvoice(ctx, toPersistenceInvoice(invoice)); err != nil {
		return application.Invoice{}, err
	}
	stored, err := a.repo.GetInvoice(ctx, invoice.ID)
	if err != nil {
		return application.Invoice{}, err
	}
	return toApplicationInvoice(stored), nil
}

func (a *invoiceRepositoryAdapter) DeleteInvoice(ctx context.Context, id string) error {
	return a.repo.DeleteInvoice(ctx, id)
}

func (a *invoiceRepositoryAdapter) ListInvoices(ctx context.Context, filter application.InvoiceFilter) ([]application.Invoice, error) {
	models, err := a.repo.ListInvoices(ctx, persistence.InvoiceFilter{
		ArtistID: filter.ArtistID,
		Status:   string(filter.Status),
	})
	if err != nil {
		return nil, err
	}
	invoices := make([]application.Invoice, 0, len(models))
	for _, model := range models {
		invoices = append(invoices, toApplicationInvoice(model))
	}
	return invoices, nil
}

type singletonStoreAdapter struct {
	store persistence.SingletonRepository
}

func newSingletonStoreAdapter(store persistence.SingletonRepository) *singletonStoreAdapter {
	return &singletonStoreAdapter{store: store}
}

func (a *singletonStoreAdapter) GetStudio(ctx context.Context) (application.Studio, error) {
	stored, err := a.store.GetStudio(ctx)
	if err != nil {
		return application.Studio{}, err
	}
	return application.Studio{
		ID:          stored.ID,
		Name:        stored.Name,
		Description: stored.Description,
		Address:     stored.Address,
		Phone:       stored.Phone,
		Email:       stored.Email,
		OpenTime:    stored.OpenTime,
		CloseTime:   stored.CloseTime,
		CreatedAt:   stored.CreatedAt,
		UpdatedAt:   stored.UpdatedAt,
	}, nil
}

func (a *singletonStoreAdapter) PutStudio(ctx context.Context, studio application.Studio) error {
	return a.store.PutStudio(ctx, persistence.Studio{
		ID:          studio.ID,
		Name:        studio.Name,
		Description: studio.Description,
		Address:     studio.Address,
		Phone:       studio.Phone,
		Email:       studio.Email,
		OpenTime:    studio.OpenTime,
		CloseTime:   studio.CloseTime,
		CreatedAt:   studio.CreatedAt,
		UpdatedAt:   studio.UpdatedAt,
	})
}

func (a *singletonStoreAdapter) GetSettings(ctx context.Context) (application.Settings, error) {
	stored, err := a.store.GetSettings(ctx)
	if err != nil {
		return application.Settings{}, err
	}
	return application.Settings{
		DefaultCurrency: application.Currency(stored.DefaultCurrency),
		TaxRate:         stored.TaxRate,
	}, nil
}

func (a *singletonStoreAdapter) PutSettings(ctx context.Context, settings application.Settings) error {
	return a.store.PutSettings(ctx, persistence.Settings{
		DefaultCurrency: string(settings.DefaultCurrency),
		TaxRate:         settings.TaxRate,
	})
}

func toApplicationSession(model persistence.Session) application.Session {
	return application.Session{
		ID:         model.ID,
		RoomID:     model.RoomID,
		ArtistID:   model.ArtistID,
		AlbumID:    cloneString(model.AlbumID),
		TrackID:    cloneString(model.TrackID),
		EngineerID: model.EngineerID,
		Date:       model.Date,
		StartTime:  model.StartTime,
		EndTime:    model.EndTime,
		Status:     scheduler.Status(model.Status),
		Notes:      model.Notes,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}

func toPersistenceSession(session application.Session) persistence.Session {
	return persistence.Session{
		ID:         session.ID,
		RoomID:     session.RoomID,
		ArtistID:   session.ArtistID,
		AlbumID:    cloneString(session.AlbumID),
		TrackID:    cloneString(session.TrackID),
		EngineerID: session.EngineerID,
		Date:       session.Date,
		StartTime:  session.StartTime,
		EndTime:    session.EndTime,
		Status:     string(session.Status),
		Notes:      session.Notes,
		CreatedAt:  session.CreatedAt,
		UpdatedAt:  session.UpdatedAt,
	}
}

func toApplicationRoom(model persistence.Room) application.Room {
	return application.Room{
		ID:           model.ID,
		StudioID:     model.StudioID,
		Name:         model.Name,
		Type:         application.RoomType(model.Type),
		HourlyRate:   model.HourlyRate,
		Capacity:     model.Capacity,
		EquipmentIDs: append([]string(nil), model.EquipmentIDs...),
		IsAvailable:  model.IsAvailable,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}

func toPersistenceRoom(room application.Room) persistence.Room {
	return persistence.Room{
		ID:           room.ID,
		StudioID:     room.StudioID,
		Name:         room.Name,
		Type:         string(room.Type),
		HourlyRate:   room.HourlyRate,
		Capacity:     room.Capacity,
		EquipmentIDs: append([]string(nil), room.EquipmentIDs...),
		IsAvailable:  room.IsAvailable,
		CreatedAt:    room.CreatedAt,
		UpdatedAt:    room.UpdatedAt,
	}
}

func toApplicationArtist(model persistence.Artist) application.Artist {
	return application.Artist{
		ID:        model.ID,
		Name:      model.Name,
		Email:     model.Email,
		Phone:     model.Phone,
		Genre:     model.Genre,
		Label:     model.Label,
		Bio:       model.Bio,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func toPersistenceArtist(artist application.Artist) persistence.Artist {
	return persistence.Artist{
		ID:        artist.ID,
		Name:      artist.Name,
		Email:     artist.Email,
		Phone:     artist.Phone,
		Genre:     artist.Genre,
		Label:     artist.Label,
		Bio:       artist.Bio,
		CreatedAt: artist.CreatedAt,
		UpdatedAt: artist.UpdatedAt,
	}
}

func toApplicationAlbum(model persistence.Album) application.Album {
	return application.Album{
		ID:          model.ID,
		ArtistID:    model.ArtistID,
		Title:       model.Title,
		Genre:       model.Genre,
		ReleaseDate: cloneString(model.ReleaseDate),
		Status:      application.AlbumStatus(model.Status),
		TotalTracks: model.TotalTracks,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

func toPersistenceAlbum(album application.Album) persistence.Album {
	return persistence.Album{
		ID:          album.ID,
		ArtistID:    album.ArtistID,
		Title:       album.Title,
		Genre:       album.Genre,
		ReleaseDate: cloneString(album.ReleaseDate),
		Status:      string(album.Status),
		TotalTracks: album.TotalTracks,
		CreatedAt:   album.CreatedAt,
		UpdatedAt:   album.UpdatedAt,
	}
}

func toApplicationTrack(model persistence.Track) application.Track {
	return application.Track{
		ID:              model.ID,
		AlbumID:         model.AlbumID,
		Title:           model.Title,
		DurationSeconds: model.DurationSeconds,
		TrackNumber:     model.TrackNumber,
		Status:          application.TrackStatus(model.Status),
		BPM:             cloneInt(model.BPM),
		Key:             cloneString(model.Key),
		Notes:           model.Notes,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
}

func toPersistenceTrack(track application.Track) persistence.Track {
	return persistence.Track{
		ID:              track.ID,
		AlbumID:         track.AlbumID,
		Title:           track.Title,
		DurationSeconds: track.DurationSeconds,
		TrackNumber:     track.TrackNumber,
		Status:          string(track.Status),
		BPM:             cloneInt(track.BPM),
		Key:             cloneString(track.Key),
		Notes:           track.Notes,
		CreatedAt:       track.CreatedAt,
		UpdatedAt:       track.UpdatedAt,
	}
}

func toApplicationMember(model persistence.Member) application.Member {
	return application.Member{
		ID:         model.ID,
		Name:       model.Name,
		Email:      model.Email,
		Phone:      model.Phone,
		Role:       application.MemberRole(model.Role),
		Speciality: application.MemberSpeciality(model.Speciality),
		HourlyRate: model.HourlyRate,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}

func toPersistenceMember(member application.Member) persistence.Member {
	return persistence.Member{
		ID:         member.ID,
		Name:       member.Name,
		Email:      member.Email,
		Phone:      member.Phone,
		Role:       string(member.Role),
		Speciality: string(member.Speciality),
		HourlyRate: member.HourlyRate,
		CreatedAt:  member.CreatedAt,
		UpdatedAt:  member.UpdatedAt,
	}
}

func toApplicationEquipment(model persistence.Equipment) application.Equipment {
	return application.Equipment{
		ID:            model.ID,
		Name:          model.Name,
		Category:      application.EquipmentCategory(model.Category),
		Brand:         model.Brand,
		Model:         model.Model,
		SerialNumber:  model.SerialNumber,
		PurchaseDate:  model.PurchaseDate,
		PurchasePrice: model.PurchasePrice,
		Condition:     application.EquipmentCondition(model.Condition),
		RoomID:        cloneString(model.RoomID),
		IsAvailable:   model.IsAvailable,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

func toPersistenceEquipment(equipment application.Equipment) persistence.Equipment {
	return persistence.Equipment{
		ID:            equipment.ID,
		Name:          equipment.Name,
		Category:      string(equipment.Category),
		Brand:         equipment.Brand,
		Model:         equipment.Model,
		SerialNumber:  equipment.SerialNumber,
		PurchaseDate:  equipment.PurchaseDate,
		PurchasePrice: equipment.PurchasePrice,
		Condition:     string(equipment.Condition),
		RoomID:        cloneString(equipment.RoomID),
		IsAvailable:   equipment.IsAvailable,
		CreatedAt:     equipment.CreatedAt,
		UpdatedAt:     equipment.UpdatedAt,
	}
}

func toApplicationInvoice(model persistence.Invoice) application.Invoice {
	items := make([]application.InvoiceItem, 0, len(model.Items))
	for _, item := range model.Items {
		items = append(items, application.InvoiceItem{Label: item.Label, Amount: item.Amount})
	}
	return application.Invoice{
		ID:         model.ID,
		ArtistID:   model.ArtistID,
		SessionIDs: append([]string(nil), model.SessionIDs...),
		Items:      items,
		Subtotal:   model.Subtotal,
		Tax:        model.Tax,
		Total:      model.Total,
		Currency:   application.Currency(model.Currency),
		Status:     application.InvoiceStatus(model.Status),
		DueDate:    model.DueDate,
		PaidDate:   cloneString(model.PaidDate),
		Notes:      model.Notes,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}

func toPersistenceInvoice(invoice application.Invoice) persistence.Invoice {
	items := make([]persistence.InvoiceItem, 0, len(invoice.Items))
	for _, item := range invoice.Items {
		items = append(items, persistence.InvoiceItem{Label: item.Label, Amount: item.Amount})
	}
	return persistence.Invoice{
		ID:         invoice.ID,
		ArtistID:   invoice.ArtistID,
		SessionIDs: append([]string(nil), invoice.SessionIDs...),
		Items:      items,
		Subtotal:   invoice.Subtotal,
		Tax:        invoice.Tax,
		Total:      invoice.Total,
		Currency:   string(invoice.Currency),
		Status:     string(invoice.Status),
		DueDate:    invoice.DueDate,
		PaidDate:   cloneString(invoice.PaidDate),
		Notes:      invoice.Notes,
		CreatedAt:  invoice.CreatedAt,
		UpdatedAt:  invoice.UpdatedAt,
	}
}

func cloneString(value *string) *string {
	if value == nil {
		return nil
	}
	clone := *value
	return &clone
}

func cloneInt(value *int) *int {
	if value == nil {
		return nil
	}
	clone := *value
	return &clone
}
