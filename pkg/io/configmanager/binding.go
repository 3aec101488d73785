package configmanager

import (
	"reflect"
	"strings"
	"unicode"

	v1alpha1 "github.com/metalstrap/metalstrap/pkg/apis/machine/v1alpha1"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// AddFlagsFromFields registers one CLI flag per field selector on the command.
// Flag names derive from the field's position in the Machine struct; defaults
// and descriptions come from the selector.
func (m *ConfigManager) AddFlagsFromFields(cmd *cobra.Command) {
	for _, selector := range m.fieldSelectors {
		m.addFlagFromField(cmd, selector)
	}
}

func (m *ConfigManager) addFlagFromField(
	cmd *cobra.Command,
	selector FieldSelector[v1alpha1.Machine],
) {
	fieldPtr := selector.Selector(m.Config)
	if fieldPtr == nil {
		return
	}

	flagName := m.GenerateFlagName(fieldPtr)
	if flagName == "" {
		return
	}

	shorthand := m.GenerateShorthand(flagName)
	flags := cmd.Flags()

	// Enum fields carry their own pflag.Value implementation.
	if value, isFlagValue := fieldPtr.(pflag.Value); isFlagValue {
		flags.VarP(value, flagName, shorthand, selector.Description)

		return
	}

	switch ptr := fieldPtr.(type) {
	case *string:
		defaultValue, _ := selector.DefaultValue.(string)
		flags.StringVarP(ptr, flagName, shorthand, defaultValue, selector.Description)
	case *bool:
		defaultValue, _ := selector.DefaultValue.(bool)
		flags.BoolVarP(ptr, flagName, shorthand, defaultValue, selector.Description)
	case *int32:
		defaultValue, _ := selector.DefaultValue.(int32)
		flags.Int32VarP(ptr, flagName, shorthand, defaultValue, selector.Description)
	}
}

// GenerateFlagName derives a CLI flag name from a field's position in the
// machine config struct, e.g. &Spec.Install.SystemImage yields "system-image".
// Returns the empty string when the pointer does not address a config field.
func (m *ConfigManager) GenerateFlagName(fieldPtr any) string {
	if m.Config == nil || fieldPtr == nil {
		return ""
	}

	path := findFieldPath(reflect.ValueOf(m.Config).Elem(), fieldPtr, nil)
	if len(path) == 0 {
		return ""
	}

	return kebabCase(path[len(path)-1])
}

// GenerateShorthand returns the single-letter shorthand for well-known flags,
// or the empty string when the flag has none.
func (m *ConfigManager) GenerateShorthand(flagName string) string {
	shorthands := map[string]string{
		"system-image": "i",
	}

	return shorthands[flagName]
}

// findFieldPath walks struct fields depth-first, comparing address and type
// so a struct is never confused with its first field.
func findFieldPath(structVal reflect.Value, fieldPtr any, path []string) []string {
	if structVal.Kind() != reflect.Struct {
		return nil
	}

	structType := structVal.Type()

	for index := range structVal.NumField() {
		field := structVal.Field(index)
		if !field.CanAddr() {
			continue
		}

		fieldPath := append(path[:len(path):len(path)], structType.Field(index).Name)

		if field.Addr().Interface() == fieldPtr {
			return fieldPath
		}

		if field.Kind() == reflect.Struct {
			found := findFieldPath(field, fieldPtr, fieldPath)
			if found != nil {
				return found
			}
		}
	}

	return nil
}

// kebabCase converts a Go field name to its flag spelling, keeping acronym
// runs together (SystemImage becomes system-image, APIVersion api-version).
func kebabCase(name string) string {
	runes := []rune(name)

	var builder strings.Builder

	for index, char := range runes {
		if !unicode.IsUpper(char) {
			builder.WriteRune(char)

			continue
		}

		boundary := index > 0 &&
			(unicode.IsLower(runes[index-1]) ||
				(index+1 < len(runes) && unicode.IsLower(runes[index+1])))
		if boundary {
			builder.WriteRune('-')
		}

		builder.WriteRune(unicode.ToLower(char))
	}

	return builder.String()
}
