// Package validate provides struct-tag validation for request payloads.
//
// Rules are comma-separated in the `validate` tag:
//
//	required            field must not be zero/empty
//	nullable            if empty, skip all remaining rules for this field
//	email               valid email address
//	url                 valid URL (http/https)
//	date                parseable date (common layouts tried)
//	alpha_dash          letters, digits, hyphens, underscores
//	numeric             any number
//	integer             whole number
//	min=N               string: min char length | number: min value
//	max=N               string: max char length | number: max value
//	gte=N / lte=N       number >= N / number <= N
//	between=lo,hi       number or string length in [lo, hi]
//	digits=N            exactly N decimal digits
//	in=a,b,c            value must be one of the listed items
//	confirmed           sibling field <field>_confirmation must match
//
// Example:
//
//	type RegisterRequest struct {
//	    Username string `json:"username" validate:"required,alpha_dash,min=3,max=50"`
//	    Email    string `json:"email"    validate:"required,email"`
//	    Rating   int    `json:"rating"   validate:"required,gte=1,lte=5"`
//	}
package validate

import (
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// check is one rule evaluation. It returns a message on failure, "" on pass.
type check struct {
	field  string        // json name, used in messages
	value  reflect.Value // the field under test
	raw    string        // value rendered as a string
	param  string        // text after "=" in the rule, if any
	parent reflect.Value // owning struct, for sibling lookups
}

var rules = map[string]func(check) string{
	"required":   ruleRequired,
	"email":      ruleEmail,
	"url":        ruleURL,
	"date":       ruleDate,
	"alpha_dash": ruleAlphaDash,
	"numeric":    ruleNumeric,
	"integer":    ruleInteger,
	"min":        ruleMin,
	"max":        ruleMax,
	"gte":        ruleGte,
	"lte":        ruleLte,
	"between":    ruleBetween,
	"digits":     ruleDigits,
	"in":         ruleIn,
	"confirmed":  ruleConfirmed,
}

// Struct validates all exported fields of v that carry a `validate` tag.
// Returns a map of fieldName -> error message; empty map means no errors.
func Struct(v interface{}) map[string]string {
	errs := make(map[string]string)
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return errs
	}

	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		tag := rt.Field(i).Tag.Get("validate")
		if tag == "" {
			continue
		}
		name := jsonFieldName(rt.Field(i))
		if msg := validateField(name, rv.Field(i), rv, splitRules(tag)); msg != "" {
			errs[name] = msg
		}
	}
	return errs
}

// HasErrors reports whether the errs map is non-empty.
func HasErrors(errs map[string]string) bool { return len(errs) > 0 }

// validateField runs each rule in order and stops at the first failure.
func validateField(name string, value, parent reflect.Value, ruleList []string) string {
	for _, r := range ruleList {
		if strings.TrimSpace(r) == "nullable" {
			if isEmpty(value) {
				return ""
			}
		}
	}

	for _, r := range ruleList {
		key, param, _ := strings.Cut(r, "=")
		key = strings.TrimSpace(key)
		if key == "nullable" {
			continue
		}
		fn, ok := rules[key]
		if !ok {
			continue
		}
		c := check{
			field:  name,
			value:  value,
			raw:    fmt.Sprintf("%v", value.Interface()),
			param:  param,
			parent: parent,
		}
		if msg := fn(c); msg != "" {
			return msg
		}
	}
	return ""
}

func ruleRequired(c check) string {
	if isEmpty(c.value) {
		return fmt.Sprintf("The %s field is required.", c.field)
	}
	return ""
}

func ruleEmail(c check) string {
	if !emailRE.MatchString(c.raw) {
		return fmt.Sprintf("The %s must be a valid email address.", c.field)
	}
	return ""
}

func ruleURL(c check) string {
	u, err := url.ParseRequestURI(c.raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Sprintf("The %s must be a valid URL.", c.field)
	}
	return ""
}

func ruleDate(c check) string {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, c.raw); err == nil {
			return ""
		}
	}
	return fmt.Sprintf("The %s is not a valid date.", c.field)
}

func ruleAlphaDash(c check) string {
	for _, r := range c.raw {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '_' {
			return fmt.Sprintf("The %s field may only contain letters, numbers, dashes, and underscores.", c.field)
		}
	}
	return ""
}

func ruleNumeric(c check) string {
	if _, err := strconv.ParseFloat(c.raw, 64); err != nil {
		return fmt.Sprintf("The %s field must be a number.", c.field)
	}
	return ""
}

func ruleInteger(c check) string {
	if _, err := strconv.ParseInt(c.raw, 10, 64); err != nil {
		return fmt.Sprintf("The %s field must be an integer.", c.field)
	}
	return ""
}

func ruleMin(c check) string {
	n := paramFloat(c.param)
	if isNumericKind(c.value) {
		if toFloat(c.value) < n {
			return fmt.Sprintf("The %s must be at least %s.", c.field, c.param)
		}
		return ""
	}
	if float64(len([]rune(c.raw))) < n {
		return fmt.Sprintf("The %s must be at least %s characters.", c.field, c.param)
	}
	return ""
}

func ruleMax(c check) string {
	n := paramFloat(c.param)
	if isNumericKind(c.value) {
		if toFloat(c.value) > n {
			return fmt.Sprintf("The %s must not be greater than %s.", c.field, c.param)
		}
		return ""
	}
	if float64(len([]rune(c.raw))) > n {
		return fmt.Sprintf("The %s must not exceed %s characters.", c.field, c.param)
	}
	return ""
}

func ruleGte(c check) string {
	if toFloat(c.value) < paramFloat(c.param) {
		return fmt.Sprintf("The %s must be greater than or equal to %s.", c.field, c.param)
	}
	return ""
}

func ruleLte(c check) string {
	if toFloat(c.value) > paramFloat(c.param) {
		return fmt.Sprintf("The %s must be less than or equal to %s.", c.field, c.param)
	}
	return ""
}

func ruleBetween(c check) string {
	lo, hi, ok := strings.Cut(c.param, ",")
	if !ok {
		return ""
	}
	low, high := paramFloat(lo), paramFloat(hi)
	if isNumericKind(c.value) {
		if f := toFloat(c.value); f < low || f > high {
			return fmt.Sprintf("The %s must be between %s and %s.", c.field, lo, hi)
		}
		return ""
	}
	if l := float64(len([]rune(c.raw))); l < low || l > high {
		return fmt.Sprintf("The %s must be between %s and %s characters.", c.field, lo, hi)
	}
	return ""
}

func ruleDigits(c check) string {
	if !digitsOnlyRE.MatchString(c.raw) || float64(len(c.raw)) != paramFloat(c.param) {
		return fmt.Sprintf("The %s must be %s digits.", c.field, c.param)
	}
	return ""
}

func ruleIn(c check) string {
	for _, option := range strings.Split(c.param, ",") {
		if c.raw == strings.TrimSpace(option) {
			return ""
		}
	}
	return fmt.Sprintf("The selected %s is invalid.", c.field)
}

func ruleConfirmed(c check) string {
	sibling := findSiblingByJSONName(c.parent, c.field+"_confirmation")
	if sibling == nil || fmt.Sprintf("%v", sibling.Interface()) != c.raw {
		return fmt.Sprintf("The %s confirmation does not match.", c.field)
	}
	return ""
}

var (
	emailRE      = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	digitsOnlyRE = regexp.MustCompile(`^\d+$`)
)

var dateLayouts = []string{
	time.RFC3339, "2006-01-02", "02/01/2006",
	"2006-01-02 15:04:05",
}

func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	case reflect.Bool:
		return false
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	}
	return false
}

func isNumericKind(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func toFloat(v reflect.Value) float64 {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint())
	case reflect.Float32, reflect.Float64:
		return v.Float()
	}
	f, _ := strconv.ParseFloat(fmt.Sprintf("%v", v.Interface()), 64)
	return f
}

func paramFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

func jsonFieldName(f reflect.StructField) string {
	name := f.Tag.Get("json")
	if name == "" || name == "-" {
		return strings.ToLower(f.Name)
	}
	name, _, _ = strings.Cut(name, ",")
	return name
}

// splitRules splits the validate tag by comma while keeping the multi-value
// parameters of in= and between= intact:
// "required,in=admin,user,max=100" -> ["required","in=admin,user","max=100"]
func splitRules(tag string) []string {
	var out []string
	var cur strings.Builder
	inParam := false

	for i := 0; i < len(tag); i++ {
		ch := tag[i]
		if ch == ',' {
			if inParam && !startsNewRule(tag[i+1:]) {
				cur.WriteByte(ch)
				continue
			}
			out = append(out, cur.String())
			cur.Reset()
			inParam = false
			continue
		}
		cur.WriteByte(ch)
		if !inParam {
			s := cur.String()
			if strings.HasSuffix(s, "in=") || strings.HasSuffix(s, "between=") {
				inParam = true
			}
		}
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return out
}

func startsNewRule(s string) bool {
	for name := range rules {
		if strings.HasPrefix(s, name+"=") || s == name || strings.HasPrefix(s, name+",") {
			return true
		}
	}
	return strings.HasPrefix(s, "nullable")
}

func findSiblingByJSONName(parent reflect.Value, name string) *reflect.Value {
	rt := parent.Type()
	for i := 0; i < rt.NumField(); i++ {
		if jsonFieldName(rt.Field(i)) == name {
			v := parent.Field(i)
			return &v
		}
	}
	return nil
}
