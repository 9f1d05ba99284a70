package mongodb

import (
	"context"
	"time"

	"github.com/davicafu/moderlab/internal/outbox"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MessageArchive guarda en MongoDB una copia de los mensajes de outbox ya
// publicados, para auditoría y re-publicación manual. Es best effort y corre
// fuera de la transacción relacional.
type MessageArchive struct {
	coll *mongo.Collection
}

func NewMessageArchive(client *mongo.Client, dbName string) *MessageArchive {
	return &MessageArchive{coll: client.Database(dbName).Collection("outbox_archive")}
}

// archivedMessage es el documento BSON del archivo.
type archivedMessage struct {
	MessageID  uuid.UUID `bson:"_id"`
	Data       string    `bson:"data"`
	EventType  string    `bson:"eventType"`
	CreatedAt  time.Time `bson:"createdAt"`
	ArchivedAt time.Time `bson:"archivedAt"`
}

func (a *MessageArchive) Archive(ctx context.Context, msg outbox.Message) error {
	doc := archivedMessage{
		MessageID:  msg.MessageID,
		Data:       string(msg.Data),
		EventType:  msg.EventType,
		CreatedAt:  msg.CreatedAt,
		ArchivedAt: time.Now().UTC(),
	}

	// Upsert por _id: archivar dos veces el mismo mensaje no duplica.
	opts := options.Replace().SetUpsert(true)
	_, err := a.coll.ReplaceOne(ctx, bson.M{"_id": msg.MessageID}, doc, opts)
	return err
}

// Verificación en tiempo de compilación.
var _ outbox.Archiver = (*MessageArchive)(nil)
