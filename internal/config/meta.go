package config

import (
	"reflect"
	"strings"
)

// GetSettingsExample uses reflection to generate example settings.
// This automatically stays in sync when new fields are added to Settings.
func GetSettingsExample() map[string]any {
	var s Settings
	t := reflect.TypeOf(s)
	example := make(map[string]any)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		jsonTag := field.Tag.Get("json")
		if jsonTag == "" {
			continue
		}

		jsonName := strings.Split(jsonTag, ",")[0]
		example[jsonName] = generateExampleValue(field.Type, jsonName)
	}

	return example
}

// generateExampleValue creates appropriate example values based on type and field name
func generateExampleValue(t reflect.Type, fieldName string) any {
	if t.Kind() == reflect.Ptr {
		switch t.Elem().Kind() {
		case reflect.Bool:
			return fieldName == "debug"
		case reflect.Int:
			switch fieldName {
			case "max_log_files":
				return DefaultMaxLogFiles
			case "parallel":
				return 1
			case "run_timeout_seconds":
				return DefaultRunTimeoutSeconds
			}
			return 10
		}
	}

	switch t.Kind() {
	case reflect.String:
		switch fieldName {
		case "binary_name":
			return DefaultBinaryName
		case "package":
			return DefaultPackage
		case "scenarios_file":
			return DefaultScenariosFile
		default:
			return "example"
		}
	case reflect.Slice:
		switch fieldName {
		case "coverage_tags":
			return DefaultCoverageTags
		case "pgo_tags":
			return DefaultPGOTags
		case "plain_tags":
			return DefaultPlainTags
		default:
			return []string{"example1", "example2"}
		}
	}

	return nil
}
