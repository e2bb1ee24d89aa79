package utilities

import (
	"log"
	"os"
	"time"
)

// AppendAudit keeps an append-only daily record of applied changes so a
// bad run can be reconstructed even after the .bak is overwritten.
func AppendAudit(prefix, message string) {
	filename := "logs/" + prefix + "_" + time.Now().Format("20060102") + ".log"

	if _, err := os.Stat("logs"); os.IsNotExist(err) {
		os.Mkdir("logs", 0755)
	}

	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Println("audit log open failed:", err)
		return
	}
	defer f.Close()

	logLine := time.Now().Format("15:04:05") + " - " + message + "\n"
	if _, err := f.WriteString(logLine); err != nil {
		log.Println("audit log write failed:", err)
	}
}
