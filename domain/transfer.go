package domain

import (
	"errors"
)

const (
	ExportFormatCSV  = "csv"
	ExportFormatJSON = "json"

	ExportFileName = "wastenot_user_data"
)

var (
	MessageSuccessImport = "data imported successfully"
	MessageSuccessClear  = "all data cleared successfully"
	MessageSuccessBackup = "backup uploaded successfully"
	MessageFailedExport  = "failed to export data"
	MessageFailedImport  = "error importing data, please check the file format"
	MessageFailedClear   = "failed to clear data"
	MessageFailedBackup  = "failed to upload backup"
	MessageFailedNoFile  = "please select a file to import"

	ErrUnknownExportFormat = errors.New("invalid export format")
)

type (
	ImportResponse struct {
		Items   int      `json:"items"`
		Recipes int      `json:"recipes"`
		Keys    []string `json:"keys"`
	}

	BackupResponse struct {
		Key string `json:"key"`
		URL string `json:"url"`
	}
)
