package pkg

import (
	"reflect"
	"strconv"

	"github.com/chainreactors/logs"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/gookit/config/v2"
	"sigs.k8s.io/yaml"
)

func LoadConfig(filename string, v interface{}) error {
	err := config.LoadFiles(filename)
	if err != nil {
		return err
	}
	err = config.Decode(v)
	if err != nil {
		return err
	}
	return nil
}

// InitDefaultConfig 根据struct的config与default tag生成默认的yaml配置
func InitDefaultConfig(v interface{}) (string, error) {
	content, err := yaml.Marshal(configMap(reflect.Indirect(reflect.ValueOf(v))))
	if err != nil {
		return "", err
	}
	return string(content), nil
}

func configMap(value reflect.Value) map[string]interface{} {
	m := make(map[string]interface{})
	typ := value.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		name := field.Tag.Get("config")
		if name == "" || !field.IsExported() {
			continue
		}
		fv := value.Field(i)
		if field.Type.Kind() == reflect.Struct {
			m[name] = configMap(fv)
			continue
		}
		if fv.IsZero() {
			if def, ok := field.Tag.Lookup("default"); ok {
				m[name] = defaultValue(field.Type.Kind(), def)
				continue
			}
		}
		m[name] = fv.Interface()
	}
	return m
}

func defaultValue(kind reflect.Kind, def string) interface{} {
	switch kind {
	case reflect.Int, reflect.Int64:
		if i, err := strconv.Atoi(def); err == nil {
			return i
		}
	case reflect.Bool:
		if b, err := strconv.ParseBool(def); err == nil {
			return b
		}
	}
	return def
}

func CompareWithExpr(exp *vm.Program, params map[string]interface{}) bool {
	res, err := expr.Run(exp, params)
	if err != nil {
		logs.Log.Warn(err.Error())
	}

	if res == true {
		return true
	} else {
		return false
	}
}
