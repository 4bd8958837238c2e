package conf

import (
	"flag"
	"reflect"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

var configPath = flag.String("config", "", "Path to the config file")

type Option func(v *viper.Viper)

func EnvPrefix(prefix string) Option {
	return func(v *viper.Viper) {
		v.SetEnvPrefix(prefix)
	}
}

// bindEnvs registers every leaf field of the config struct with viper,
// so environment variables work without a config file present.
// https://github.com/spf13/viper/issues/188#issuecomment-399884438
func bindEnvs(iface interface{}, parts ...string) error {
	ifv := reflect.ValueOf(iface)
	ift := reflect.TypeOf(iface)

	if ifv.Kind() == reflect.Ptr {
		return bindEnvs(ifv.Elem().Interface(), parts...)
	}

	for i := 0; i < ift.NumField(); i++ {
		v := ifv.Field(i)
		t := ift.Field(i)
		name, ok := t.Tag.Lookup("mapstructure")
		if !ok {
			name = t.Name
		}
		if v.Kind() == reflect.Struct {
			if err := bindEnvs(v.Interface(), append(parts, name)...); err != nil {
				return err
			}
			continue
		}
		if err := viper.BindEnv(strings.Join(append(parts, name), ".")); err != nil {
			return err
		}
	}
	return nil
}

func ParseConfig(config interface{}, options ...Option) error {
	if !flag.Parsed() {
		flag.Parse()
	}

	for _, option := range options {
		option(viper.GetViper())
	}
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if *configPath != "" {
		viper.SetConfigFile(*configPath)
		if err := viper.ReadInConfig(); err != nil {
			return errors.Wrap(err, "Failed to load config")
		}
	}

	if err := bindEnvs(config); err != nil {
		return errors.Wrap(err, "Failed to bind environment")
	}

	if err := viper.Unmarshal(config); err != nil {
		return errors.Wrap(err, "Failed to unmarshal config")
	}

	return nil
}
