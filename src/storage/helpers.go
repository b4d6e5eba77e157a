package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// WriteToCSV writes a slice of structs to filePath+".csv", one column per
// field, headed by the field's json name.
func WriteToCSV(filePath string, data any) error {
	v := reflect.ValueOf(data)
	if v.Kind() != reflect.Slice {
		return fmt.Errorf("expected slice, got %T", data)
	}

	elemType := v.Type().Elem()
	if elemType.Kind() != reflect.Struct {
		return fmt.Errorf("expected slice of structs, got %T", data)
	}

	file, err := os.Create(filePath + ".csv")
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	// --- HEADER ---
	var headers []string
	for i := 0; i < elemType.NumField(); i++ {
		field := elemType.Field(i)
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" {
			name = field.Name
		}
		headers = append(headers, name)
	}
	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	// --- ROWS ---
	for i := 0; i < v.Len(); i++ {
		rowVal := v.Index(i)
		var record []string
		for j := 0; j < rowVal.NumField(); j++ {
			record = append(record, formatField(rowVal.Field(j)))
		}

		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

func formatField(f reflect.Value) string {
	switch f.Kind() {
	case reflect.String:
		return f.String()
	case reflect.Pointer:
		if f.IsNil() {
			return ""
		}
		return formatField(f.Elem())
	case reflect.Int, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(f.Int(), 10)
	case reflect.Float64:
		return strconv.FormatFloat(f.Float(), 'f', 2, 64)
	case reflect.Bool:
		return strconv.FormatBool(f.Bool())
	default:
		return fmt.Sprintf("%v", f.Interface())
	}
}

// WriteToJSON writes data as indented JSON to filePath+".json".
func WriteToJSON(filePath string, data any) error {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding JSON for %s: %w", filePath, err)
	}
	if err := os.WriteFile(filePath+".json", b, 0644); err != nil {
		return fmt.Errorf("error writing file %s: %w", filePath, err)
	}
	return nil
}
