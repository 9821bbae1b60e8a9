package config

import (
	"reflect"
	"strings"

	"github.com/spf13/viper"
)

// bindEnvs registers every mapstructure key of the config struct with viper,
// so AutomaticEnv also applies to keys the YAML file does not mention.
func bindEnvs(v *viper.Viper, config interface{}, parts ...string) {
	rv := reflect.ValueOf(config)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return
	}
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		tag := field.Tag.Get("mapstructure")
		if tag == "" || tag == "-" {
			continue
		}
		key := append(append([]string{}, parts...), tag)
		if field.Type.Kind() == reflect.Struct && field.Type.String() != "time.Duration" {
			bindEnvs(v, rv.Field(i).Interface(), key...)
			continue
		}
		_ = v.BindEnv(strings.Join(key, "."))
	}
}
