package handler

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"carrot/internal/app/db"
	dbc "carrot/internal/app/db/sqlc"
)

// fakeDB is an in-memory dbc.Querier. writes counts every successful mutation.
type fakeDB struct {
	mu sync.Mutex

	nextID int64
	writes int

	users          map[int64]dbc.User
	tokens         map[string]dbc.Token
	products       map[int64]dbc.Product
	favs           map[[2]int64]dbc.Fav
	sales          []dbc.Sale
	purchases      []dbc.Purchase
	chatRooms      map[int64]dbc.ChatRoom
	chatMessages   []dbc.ChatMessage
	streams        map[int64]dbc.Stream
	streamMessages []dbc.StreamMessage
	reviews        []dbc.Review

	// failWith, when set, is returned by every call.
	failWith error
	// touchErr is returned by TouchChatRoom only.
	touchErr error
	// onRelated runs once, unlocked, when ListRelatedProducts is next called.
	onRelated func()
}

var _ dbc.Querier = (*fakeDB)(nil)

func newFakeDB() *fakeDB {
	return &fakeDB{
		users:     make(map[int64]dbc.User),
		tokens:    make(map[string]dbc.Token),
		products:  make(map[int64]dbc.Product),
		favs:      make(map[[2]int64]dbc.Fav),
		chatRooms: make(map[int64]dbc.ChatRoom),
		streams:   make(map[int64]dbc.Stream),
	}
}

func now() pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: time.Now().UTC(), Valid: true}
}

func (f *fakeDB) id() int64 {
	f.nextID++
	return f.nextID
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

// seedUser inserts a user directly.
func (f *fakeDB) seedUser(name, email string) dbc.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := dbc.User{ID: f.id(), Name: name, Email: text(email), CreatedAt: now(), UpdatedAt: now()}
	f.users[u.ID] = u
	return u
}

func (f *fakeDB) seedProduct(userID int64, name string, price int64) dbc.Product {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := dbc.Product{ID: f.id(), UserID: userID, Name: name, Price: price, Description: "desc", Image: "products/" + name + ".png", CreatedAt: now(), UpdatedAt: now()}
	f.products[p.ID] = p
	return p
}

func (f *fakeDB) seedStream(userID int64, name, key string) dbc.Stream {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := dbc.Stream{ID: f.id(), UserID: userID, Name: name, Description: "live", Price: 1000, VideoProviderID: "vp-" + name, VideoProviderKey: text(key), CreatedAt: now(), UpdatedAt: now()}
	f.streams[s.ID] = s
	return s
}

func (f *fakeDB) seedReview(byID, forID int64, score int32, review string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reviews = append(f.reviews, dbc.Review{ID: f.id(), CreatedByID: byID, CreatedForID: forID, Score: score, Review: review, CreatedAt: now()})
}

// ageToken moves a token's creation time back by d.
func (f *fakeDB) ageToken(payload string, d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := f.tokens[payload]
	t.CreatedAt.Time = t.CreatedAt.Time.Add(-d)
	f.tokens[payload] = t
}

func (f *fakeDB) dropUser(id int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, id)
}

func (f *fakeDB) writeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writes
}

func (f *fakeDB) CreateChatMessage(_ context.Context, arg dbc.CreateChatMessageParams) (dbc.ChatMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return dbc.ChatMessage{}, f.failWith
	}
	m := dbc.ChatMessage{ID: f.id(), ChatRoomID: arg.ChatRoomID, UserID: arg.UserID, Message: arg.Message, CreatedAt: now()}
	f.chatMessages = append(f.chatMessages, m)
	f.writes++
	return m, nil
}

func (f *fakeDB) CreateFav(_ context.Context, arg dbc.CreateFavParams) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	key := [2]int64{arg.UserID, arg.ProductID}
	if _, ok := f.favs[key]; !ok {
		f.favs[key] = dbc.Fav{ID: f.id(), UserID: arg.UserID, ProductID: arg.ProductID, CreatedAt: now()}
		f.writes++
	}
	return nil
}

func (f *fakeDB) CreateProduct(_ context.Context, arg dbc.CreateProductParams) (dbc.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return dbc.Product{}, f.failWith
	}
	p := dbc.Product{ID: f.id(), UserID: arg.UserID, Name: arg.Name, Price: arg.Price, Description: arg.Description, Image: arg.Image, CreatedAt: now(), UpdatedAt: now()}
	f.products[p.ID] = p
	f.writes++
	return p, nil
}

func (f *fakeDB) CreateStream(_ context.Context, arg dbc.CreateStreamParams) (dbc.Stream, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return dbc.Stream{}, f.failWith
	}
	s := dbc.Stream{
		ID: f.id(), UserID: arg.UserID, Name: arg.Name, Description: arg.Description, Price: arg.Price,
		VideoProviderID: arg.VideoProviderID, VideoProviderUrl: arg.VideoProviderUrl, VideoProviderKey: arg.VideoProviderKey,
		CreatedAt: now(), UpdatedAt: now(),
	}
	f.streams[s.ID] = s
	f.writes++
	return s, nil
}

func (f *fakeDB) CreateStreamMessage(_ context.Context, arg dbc.CreateStreamMessageParams) (dbc.StreamMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return dbc.StreamMessage{}, f.failWith
	}
	m := dbc.StreamMessage{ID: f.id(), StreamID: arg.StreamID, UserID: arg.UserID, Message: arg.Message, CreatedAt: now()}
	f.streamMessages = append(f.streamMessages, m)
	f.writes++
	return m, nil
}

func (f *fakeDB) CreateToken(_ context.Context, arg dbc.CreateTokenParams) (dbc.Token, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return dbc.Token{}, f.failWith
	}
	if _, ok := f.tokens[arg.Payload]; ok {
		return dbc.Token{}, uniqueViolation("tokens_payload_key")
	}
	t := dbc.Token{ID: f.id(), Payload: arg.Payload, UserID: arg.UserID, CreatedAt: now()}
	f.tokens[arg.Payload] = t
	f.writes++
	return t, nil
}

func (f *fakeDB) DeleteFav(_ context.Context, arg dbc.DeleteFavParams) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return 0, f.failWith
	}
	key := [2]int64{arg.UserID, arg.ProductID}
	if _, ok := f.favs[key]; !ok {
		return 0, nil
	}
	delete(f.favs, key)
	f.writes++
	return 1, nil
}

func (f *fakeDB) DeleteUserTokens(_ context.Context, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	for payload, t := range f.tokens {
		if t.UserID == userID {
			delete(f.tokens, payload)
		}
	}
	f.writes++
	return nil
}

func (f *fakeDB) FavExists(_ context.Context, arg dbc.FavExistsParams) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return false, f.failWith
	}
	_, ok := f.favs[[2]int64{arg.UserID, arg.ProductID}]
	return ok, nil
}

func (f *fakeDB) GetChatRoom(_ context.Context, id int64) (dbc.GetChatRoomRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return dbc.GetChatRoomRow{}, f.failWith
	}
	room, ok := f.chatRooms[id]
	if !ok {
		return dbc.GetChatRoomRow{}, pgx.ErrNoRows
	}
	p := f.products[room.ProductID]
	return dbc.GetChatRoomRow{
		ID: room.ID, ProductID: room.ProductID, BuyerID: room.BuyerID, SellerID: room.SellerID,
		CreatedAt: room.CreatedAt, UpdatedAt: room.UpdatedAt,
		ProductName: p.Name, ProductImage: p.Image, ProductPrice: p.Price,
	}, nil
}

func (f *fakeDB) GetProduct(_ context.Context, id int64) (dbc.GetProductRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return dbc.GetProductRow{}, f.failWith
	}
	p, ok := f.products[id]
	if !ok {
		return dbc.GetProductRow{}, pgx.ErrNoRows
	}
	u := f.users[p.UserID]
	return dbc.GetProductRow{
		ID: p.ID, UserID: p.UserID, Name: p.Name, Price: p.Price, Description: p.Description, Image: p.Image,
		Completed: p.Completed, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
		UserName: u.Name, UserAvatar: u.Avatar,
	}, nil
}

func (f *fakeDB) GetStream(_ context.Context, id int64) (dbc.Stream, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return dbc.Stream{}, f.failWith
	}
	s, ok := f.streams[id]
	if !ok {
		return dbc.Stream{}, pgx.ErrNoRows
	}
	return s, nil
}

func (f *fakeDB) GetToken(_ context.Context, arg dbc.GetTokenParams) (dbc.Token, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return dbc.Token{}, f.failWith
	}
	t, ok := f.tokens[arg.Payload]
	if !ok || !t.CreatedAt.Time.After(arg.CreatedAfter.Time) {
		return dbc.Token{}, pgx.ErrNoRows
	}
	return t, nil
}

func (f *fakeDB) GetUser(_ context.Context, id int64) (dbc.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return dbc.User{}, f.failWith
	}
	u, ok := f.users[id]
	if !ok {
		return dbc.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (f *fakeDB) ListChatMessages(_ context.Context, chatRoomID int64) ([]dbc.ListChatMessagesRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := []dbc.ListChatMessagesRow{}
	for _, m := range f.chatMessages {
		if m.ChatRoomID == chatRoomID {
			out = append(out, dbc.ListChatMessagesRow{ID: m.ID, Message: m.Message, CreatedAt: m.CreatedAt, UserID: m.UserID, UserAvatar: f.users[m.UserID].Avatar})
		}
	}
	return out, nil
}

func (f *fakeDB) ListChatRoomsForUser(_ context.Context, userID int64) ([]dbc.ListChatRoomsForUserRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := []dbc.ListChatRoomsForUserRow{}
	for _, room := range f.chatRooms {
		if room.BuyerID != userID && room.SellerID != userID {
			continue
		}
		last := ""
		for _, m := range f.chatMessages {
			if m.ChatRoomID == room.ID {
				last = m.Message
			}
		}
		p := f.products[room.ProductID]
		out = append(out, dbc.ListChatRoomsForUserRow{
			ID: room.ID, ProductID: room.ProductID, BuyerID: room.BuyerID, SellerID: room.SellerID,
			UpdatedAt: room.UpdatedAt, ProductName: p.Name, ProductImage: p.Image, LastMessage: last,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeDB) favCount(productID int64) int64 {
	var n int64
	for key := range f.favs {
		if key[1] == productID {
			n++
		}
	}
	return n
}

func (f *fakeDB) ListFavsByUser(_ context.Context, userID int64) ([]dbc.ListFavsByUserRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := []dbc.ListFavsByUserRow{}
	for key, fav := range f.favs {
		if key[0] != userID {
			continue
		}
		p := f.products[fav.ProductID]
		out = append(out, dbc.ListFavsByUserRow{
			ID: fav.ID, UserID: fav.UserID, ProductID: fav.ProductID, CreatedAt: fav.CreatedAt,
			ProductName: p.Name, ProductPrice: p.Price, ProductImage: p.Image, ProductFavCount: f.favCount(p.ID),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeDB) ListProducts(_ context.Context, arg dbc.ListProductsParams) ([]dbc.ListProductsRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	all := make([]dbc.Product, 0, len(f.products))
	for _, p := range f.products {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })

	out := []dbc.ListProductsRow{}
	for i := int(arg.Offset); i < len(all) && len(out) < int(arg.Limit); i++ {
		p := all[i]
		out = append(out, dbc.ListProductsRow{
			ID: p.ID, UserID: p.UserID, Name: p.Name, Price: p.Price, Description: p.Description, Image: p.Image,
			Completed: p.Completed, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt, FavCount: f.favCount(p.ID),
		})
	}
	return out, nil
}

func (f *fakeDB) ListPurchasesByUser(_ context.Context, userID int64) ([]dbc.ListPurchasesByUserRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := []dbc.ListPurchasesByUserRow{}
	for _, s := range f.purchases {
		if s.UserID == userID {
			p := f.products[s.ProductID]
			out = append(out, dbc.ListPurchasesByUserRow{ID: s.ID, UserID: s.UserID, ProductID: s.ProductID, CreatedAt: s.CreatedAt, ProductName: p.Name, ProductPrice: p.Price, ProductImage: p.Image})
		}
	}
	return out, nil
}

func (f *fakeDB) ListRelatedProducts(_ context.Context, arg dbc.ListRelatedProductsParams) ([]dbc.Product, error) {
	f.mu.Lock()
	hook := f.onRelated
	f.onRelated = nil
	f.mu.Unlock()
	if hook != nil {
		hook()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := []dbc.Product{}
	for _, p := range f.products {
		if p.ID == arg.ID {
			continue
		}
		for _, pattern := range arg.Patterns {
			if strings.Contains(strings.ToLower(p.Name), strings.Trim(pattern, "%")) {
				out = append(out, p)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeDB) ListReviewsForUser(_ context.Context, createdForID int64) ([]dbc.ListReviewsForUserRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := []dbc.ListReviewsForUserRow{}
	for _, rv := range f.reviews {
		if rv.CreatedForID == createdForID {
			by := f.users[rv.CreatedByID]
			out = append(out, dbc.ListReviewsForUserRow{
				ID: rv.ID, Review: rv.Review, Score: rv.Score, CreatedAt: rv.CreatedAt,
				CreatedByID: by.ID, CreatedByName: by.Name, CreatedByAvatar: by.Avatar,
			})
		}
	}
	return out, nil
}

func (f *fakeDB) ListSalesByUser(_ context.Context, userID int64) ([]dbc.ListSalesByUserRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := []dbc.ListSalesByUserRow{}
	for _, s := range f.sales {
		if s.UserID == userID {
			p := f.products[s.ProductID]
			out = append(out, dbc.ListSalesByUserRow{ID: s.ID, UserID: s.UserID, ProductID: s.ProductID, CreatedAt: s.CreatedAt, ProductName: p.Name, ProductPrice: p.Price, ProductImage: p.Image})
		}
	}
	return out, nil
}

func (f *fakeDB) ListStreamMessages(_ context.Context, streamID int64) ([]dbc.ListStreamMessagesRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := []dbc.ListStreamMessagesRow{}
	for _, m := range f.streamMessages {
		if m.StreamID == streamID {
			out = append(out, dbc.ListStreamMessagesRow{ID: m.ID, Message: m.Message, UserID: m.UserID, UserAvatar: f.users[m.UserID].Avatar})
		}
	}
	return out, nil
}

func (f *fakeDB) ListStreams(_ context.Context, arg dbc.ListStreamsParams) ([]dbc.ListStreamsRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	all := make([]dbc.Stream, 0, len(f.streams))
	for _, s := range f.streams {
		all = append(all, s)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })

	out := []dbc.ListStreamsRow{}
	for i := int(arg.Offset); i < len(all) && len(out) < int(arg.Limit); i++ {
		s := all[i]
		out = append(out, dbc.ListStreamsRow{ID: s.ID, UserID: s.UserID, Name: s.Name, Description: s.Description, Price: s.Price, CreatedAt: s.CreatedAt})
	}
	return out, nil
}

func (f *fakeDB) TouchChatRoom(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	if f.touchErr != nil {
		return f.touchErr
	}
	room, ok := f.chatRooms[id]
	if ok {
		room.UpdatedAt = now()
		f.chatRooms[id] = room
	}
	return nil
}

func (f *fakeDB) UpdateProduct(_ context.Context, arg dbc.UpdateProductParams) (dbc.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return dbc.Product{}, f.failWith
	}
	p, ok := f.products[arg.ID]
	if !ok {
		return dbc.Product{}, pgx.ErrNoRows
	}
	p.Name, p.Price, p.Description, p.Image, p.UpdatedAt = arg.Name, arg.Price, arg.Description, arg.Image, now()
	f.products[arg.ID] = p
	f.writes++
	return p, nil
}

func (f *fakeDB) UpdateUserProfile(_ context.Context, arg dbc.UpdateUserProfileParams) (dbc.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return dbc.User{}, f.failWith
	}
	u, ok := f.users[arg.ID]
	if !ok {
		return dbc.User{}, pgx.ErrNoRows
	}
	for _, other := range f.users {
		if other.ID == u.ID {
			continue
		}
		if arg.Email.Valid && other.Email == arg.Email {
			return dbc.User{}, uniqueViolation(db.UsersEmailKey)
		}
		if arg.Phone.Valid && other.Phone == arg.Phone {
			return dbc.User{}, uniqueViolation(db.UsersPhoneKey)
		}
	}
	if arg.Name.Valid {
		u.Name = arg.Name.String
	}
	if arg.Email.Valid {
		u.Email = arg.Email
	}
	if arg.Phone.Valid {
		u.Phone = arg.Phone
	}
	if arg.Avatar.Valid {
		u.Avatar = arg.Avatar
	}
	u.UpdatedAt = now()
	f.users[u.ID] = u
	f.writes++
	return u, nil
}

func (f *fakeDB) UpsertChatRoom(_ context.Context, arg dbc.UpsertChatRoomParams) (dbc.ChatRoom, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return dbc.ChatRoom{}, f.failWith
	}
	for _, room := range f.chatRooms {
		if room.ProductID == arg.ProductID && room.BuyerID == arg.BuyerID {
			return room, nil
		}
	}
	room := dbc.ChatRoom{ID: f.id(), ProductID: arg.ProductID, BuyerID: arg.BuyerID, SellerID: arg.SellerID, CreatedAt: now(), UpdatedAt: now()}
	f.chatRooms[room.ID] = room
	f.writes++
	return room, nil
}

func (f *fakeDB) upsertUser(match func(dbc.User) bool, fill func(*dbc.User)) (dbc.User, error) {
	if f.failWith != nil {
		return dbc.User{}, f.failWith
	}
	for _, u := range f.users {
		if match(u) {
			return u, nil
		}
	}
	u := dbc.User{ID: f.id(), Name: "Anonymous", CreatedAt: now(), UpdatedAt: now()}
	fill(&u)
	f.users[u.ID] = u
	f.writes++
	return u, nil
}

func (f *fakeDB) UpsertUserByEmail(_ context.Context, email pgtype.Text) (dbc.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.upsertUser(func(u dbc.User) bool { return u.Email == email }, func(u *dbc.User) { u.Email = email })
}

func (f *fakeDB) UpsertUserByPhone(_ context.Context, phone pgtype.Text) (dbc.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.upsertUser(func(u dbc.User) bool { return u.Phone == phone }, func(u *dbc.User) { u.Phone = phone })
}

// mockStorage is a function-field storage.StorageService.
type mockStorage struct {
	mu      sync.Mutex
	uploads []string
	deleted []string

	PresignUploadFunc func(ctx context.Context, key, mimeType string, fileSize int64, duration time.Duration) (string, error)
}

func (m *mockStorage) PresignUpload(ctx context.Context, key, mimeType string, fileSize int64, duration time.Duration) (string, error) {
	if m.PresignUploadFunc != nil {
		return m.PresignUploadFunc(ctx, key, mimeType, fileSize, duration)
	}
	return "https://upload.test/" + key + "?sig=1", nil
}

func (m *mockStorage) Upload(_ context.Context, key, _ string, body io.Reader) error {
	if _, err := io.Copy(io.Discard, body); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploads = append(m.uploads, key)
	return nil
}

func (m *mockStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, key)
	return nil
}

func (m *mockStorage) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	return "https://cdn.test/" + key
}

// mockMailer records the last code sent to each address.
type mockMailer struct {
	mu    sync.Mutex
	codes map[string]string

	SendFunc func(ctx context.Context, to, code string) error
}

func (m *mockMailer) SendLoginCode(ctx context.Context, to, code string) error {
	if m.SendFunc != nil {
		if err := m.SendFunc(ctx, to, code); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.codes == nil {
		m.codes = make(map[string]string)
	}
	m.codes[to] = code
	return nil
}

func (m *mockMailer) code(to string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.codes[to]
}

type mockPublisher struct {
	mu       sync.Mutex
	subjects []string
	payloads [][]byte
}

func (p *mockPublisher) Publish(subject string, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subjects = append(p.subjects, subject)
	p.payloads = append(p.payloads, data)
	return nil
}
