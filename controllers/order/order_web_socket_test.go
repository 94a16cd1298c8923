package orderControllers

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/junaidrashid-git/storefront-backend/database/databasetest"
	"github.com/junaidrashid-git/storefront-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubBroadcastsCommittedMutations(t *testing.T) {
	hub := NewHub(databasetest.Logger())
	r := gin.New()
	r.GET("/ws", hub.OrderWebSocketHandler)
	srv := httptest.NewServer(r)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 10*time.Millisecond)

	db := databasetest.Open(t)
	svc := NewService(db, databasetest.Logger(), hub)
	user := models.User{FirstName: "W", LastName: "S", Email: "ws@test.com", Password: "hash"}
	require.NoError(t, db.Create(&user).Error)
	product := models.Product{Name: "Cable"}
	require.NoError(t, db.Create(&product).Error)

	items, err := svc.CreateOrder(context.Background(), user.ID, []models.LineItem{{ProductID: product.ID, Quantity: 1}})
	require.NoError(t, err)
	_, err = svc.DeleteOrder(context.Background(), items[0].OrderID)
	require.NoError(t, err)

	var created, deleted Event
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&created))
	require.NoError(t, conn.ReadJSON(&deleted))

	assert.Equal(t, EventOrderCreated, created.Type)
	assert.Equal(t, items[0].OrderID, created.Order.ID)
	assert.Equal(t, items, created.LineItems)
	assert.Equal(t, EventOrderDeleted, deleted.Type)
	assert.Equal(t, models.OrderStatusDeleted, deleted.Order.Status)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return hub.Clients() == 0 }, time.Second, 10*time.Millisecond)
}

func TestHubPublishWithoutClients(t *testing.T) {
	hub := NewHub(nil)
	assert.NotPanics(t, func() { hub.Publish(Event{Type: EventOrderCreated}) })
}
