package realtime

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/haiminh/hotpot-pos/models"
	"github.com/haiminh/hotpot-pos/utils"
)

// Event types pushed to connected clients.
const (
	EventMenuUpdate        = "menu_update"
	EventTableUpdate       = "table_update"
	EventOrderUpdate       = "order_update"
	EventReservationUpdate = "reservation_update"
	EventEmployeeUpdate    = "employee_update"
	EventEntityDelete      = "entity_delete"
	EventStaffNotif        = "staff_notification"
	EventItemsReady        = "items_ready"
	EventBillRequested     = "bill_requested"
	EventDayClosed         = "day_closed"
)

type Message struct {
	Event  string      `json:"event"`
	Entity string      `json:"entity,omitempty"`
	Data   interface{} `json:"data"`
}

// Hub holds every connected client (kitchen displays, staff tablets, the
// admin dashboard) keyed by role for logging.
type Hub struct {
	clients map[*websocket.Conn]string
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient adds a connection to the broadcast set.
func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

// UnregisterClient drops and closes a connection.
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// ClientCount reports how many clients are currently connected.
func ClientCount() int {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	return len(hub.clients)
}

func BroadcastMenuUpdate(item models.MenuItem) {
	broadcast(Message{Event: EventMenuUpdate, Entity: "menu", Data: item})
}

func BroadcastTableUpdate(table models.Table) {
	broadcast(Message{Event: EventTableUpdate, Entity: "tables", Data: table})
}

func BroadcastOrderUpdate(order models.Order) {
	broadcast(Message{Event: EventOrderUpdate, Entity: "orders", Data: order})
}

func BroadcastReservationUpdate(reservation models.Reservation) {
	broadcast(Message{Event: EventReservationUpdate, Entity: "reservations", Data: reservation})
}

func BroadcastEmployeeUpdate(employee models.Employee) {
	broadcast(Message{Event: EventEmployeeUpdate, Entity: "employees", Data: employee})
}

// BroadcastEntityDelete announces a record removal by table name and id.
func BroadcastEntityDelete(entity, recordID string) {
	broadcast(Message{
		Event:  EventEntityDelete,
		Entity: entity,
		Data:   map[string]string{"id": recordID},
	})
}

// BroadcastStaffNotification pushes a free-form message to staff clients.
func BroadcastStaffNotification(message string) {
	broadcast(Message{Event: EventStaffNotif, Data: message})
}

// BroadcastItemsReady tells the floor that dishes for a table are plated.
func BroadcastItemsReady(tableID string, readyCount int) {
	broadcast(Message{
		Event: EventItemsReady,
		Data: map[string]interface{}{
			"table_id":    tableID,
			"ready_count": readyCount,
		},
	})
}

// BroadcastBillRequested tells cashiers a table wants to pay.
func BroadcastBillRequested(table models.Table) {
	broadcast(Message{Event: EventBillRequested, Entity: "tables", Data: table})
}

// BroadcastDayClosed announces the end-of-day reset so clients refetch.
func BroadcastDayClosed(summary interface{}) {
	broadcast(Message{Event: EventDayClosed, Data: summary})
}

// BroadcastMessage sends an arbitrary prebuilt message.
func BroadcastMessage(msg Message) {
	broadcast(msg)
}

func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Printf("Error marshaling message: %v", err)
		return
	}

	for conn, role := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Printf("Error sending %s to %s client: %v", msg.Event, role, err)
			continue
		}
	}
}
