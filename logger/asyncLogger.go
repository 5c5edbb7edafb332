package logger

import (
	"log"

	log_model "locker-booking/models/log"
	"locker-booking/types"

	"gorm.io/gorm"
)

// AsyncLogger persists sanitized request logs to the database off the request
// path through a buffered channel.
type AsyncLogger struct {
	db      *gorm.DB
	channel chan types.LogEntry
}

func NewAsyncLogger(db *gorm.DB) *AsyncLogger {
	return &AsyncLogger{
		db:      db,
		channel: make(chan types.LogEntry, 100),
	}
}

// ProcessLog drains the channel and writes entries; run it in its own
// goroutine.
func (logger *AsyncLogger) ProcessLog() {
	log.Println("Starting asynchronous request logger...")

	for logEntry := range logger.channel {
		dbLog := log_model.Log{
			Method:          logEntry.Method,
			URL:             logEntry.URL,
			RequestBody:     logEntry.RequestBody,
			ResponseBody:    logEntry.ResponseBody,
			RequestHeaders:  logEntry.RequestHeaders,
			ResponseHeaders: logEntry.ResponseHeaders,
			StatusCode:      logEntry.StatusCode,
			CreatedAt:       logEntry.CreatedAt,
		}

		if err := logger.db.Create(&dbLog).Error; err != nil {
			log.Printf("Failed to insert request log entry: %v", err)
		}
	}
}

// Log pushes a log entry into the channel.
func (logger *AsyncLogger) Log(entry types.LogEntry) {
	logger.channel <- entry
}
