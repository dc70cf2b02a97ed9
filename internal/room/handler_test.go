package room

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"SmartCampus/pkg/validate"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeRepository struct {
	rooms map[primitive.ObjectID]*Room
}

func (r *fakeRepository) Create(_ context.Context, room *Room) error {
	for _, existing := range r.rooms {
		if existing.Number == room.Number {
			return ErrDuplicate
		}
	}
	room.ID = primitive.NewObjectID()
	cp := *room
	r.rooms[room.ID] = &cp
	return nil
}

func (r *fakeRepository) FindByID(_ context.Context, id primitive.ObjectID) (*Room, error) {
	room, ok := r.rooms[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *room
	return &cp, nil
}

func (r *fakeRepository) Find(_ context.Context, f Filter) ([]*Room, error) {
	out := []*Room{}
	for _, room := range r.rooms {
		if (f.Location == "" || room.Location == f.Location) && (f.Department == "" || room.Department == f.Department) {
			cp := *room
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeRepository) Update(_ context.Context, room *Room) error {
	if _, ok := r.rooms[room.ID]; !ok {
		return ErrNotFound
	}
	cp := *room
	r.rooms[room.ID] = &cp
	return nil
}

func (r *fakeRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.rooms[id]; !ok {
		return ErrNotFound
	}
	delete(r.rooms, id)
	return nil
}

func setup(t *testing.T) (*echo.Echo, *RoomHandler, *fakeRepository) {
	t.Helper()
	repo := &fakeRepository{rooms: map[primitive.ObjectID]*Room{}}
	e := echo.New()
	e.Validator = validate.New()
	return e, NewRoomHandler(repo, zap.NewNop()), repo
}

func newRequest(e *echo.Echo, method, target, body string, id string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if id != "" {
		c.SetParamNames("id")
		c.SetParamValues(id)
	}
	return c, rec
}

func TestRoomHandler_Create(t *testing.T) {
	e, h, repo := setup(t)

	tests := []struct {
		name     string
		body     string
		wantCode int
	}{
		{name: "ok", body: `{"number":"301","capacity":40,"location":"Main Building","department":"Computer"}`, wantCode: http.StatusCreated},
		{name: "duplicate", body: `{"number":"301","capacity":40,"location":"Main Building"}`, wantCode: http.StatusConflict},
		{name: "unknown building", body: `{"number":"302","capacity":40,"location":"Library"}`, wantCode: http.StatusBadRequest},
		{name: "missing number", body: `{"capacity":40,"location":"Main Building"}`, wantCode: http.StatusBadRequest},
		{name: "negative capacity", body: `{"number":"303","capacity":-1,"location":"Annex Building"}`, wantCode: http.StatusBadRequest},
		{name: "bad json", body: `{"number":`, wantCode: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newRequest(e, http.MethodPost, "/api/rooms", tt.body, "")
			require.NoError(t, h.Create(c))
			assert.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
		})
	}

	require.Len(t, repo.rooms, 1)
	for _, room := range repo.rooms {
		assert.Equal(t, DefaultType, room.Type)
		assert.Equal(t, "Computer", room.Department)
	}
}

func TestRoomHandler_ListFilters(t *testing.T) {
	e, h, repo := setup(t)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &Room{Number: "101", Location: "Main Building", Department: "Civil"}))
	require.NoError(t, repo.Create(ctx, &Room{Number: "W1", Location: "Workshop Building", Department: "Mechanical"}))

	c, rec := newRequest(e, http.MethodGet, "/api/rooms?location=Workshop+Building", "", "")
	require.NoError(t, h.List(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var rooms []Room
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rooms))
	require.Len(t, rooms, 1)
	assert.Equal(t, "W1", rooms[0].Number)
}

func TestRoomHandler_UpdateDelete(t *testing.T) {
	e, h, repo := setup(t)
	room := &Room{Number: "201", Type: "Lab", Location: "Academic Building"}
	require.NoError(t, repo.Create(context.Background(), room))

	c, rec := newRequest(e, http.MethodPut, "/", `{"number":"201A","type":"Lab","capacity":30,"location":"Academic Building"}`, room.ID.Hex())
	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "201A", repo.rooms[room.ID].Number)
	assert.Equal(t, 30, repo.rooms[room.ID].Capacity)

	c, rec = newRequest(e, http.MethodPut, "/", `{"number":"1","location":"Main Building"}`, primitive.NewObjectID().Hex())
	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	c, rec = newRequest(e, http.MethodGet, "/", "", "nope")
	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = newRequest(e, http.MethodDelete, "/", "", room.ID.Hex())
	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, repo.rooms)

	c, rec = newRequest(e, http.MethodDelete, "/", "", room.ID.Hex())
	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
