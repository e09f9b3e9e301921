package param

import (
	"encoding/json"
	"net/http"

	"github.com/asaskevich/govalidator"
	"github.com/gorilla/schema"
)

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.SetAliasTag("json")
	dec.IgnoreUnknownKeys(true)
	return dec
}

// Binding decodes the query of GET requests and the json body of the rest
// into v, then validates it
func Binding(r *http.Request, v interface{}) error {
	if err := Decode(r, v); err != nil {
		return err
	}

	return Validate(v)
}

// Decode decodes without validating
func Decode(r *http.Request, v interface{}) error {
	if r.Method == http.MethodGet || r.Body == nil || r.ContentLength == 0 {
		return decoder.Decode(v, r.URL.Query())
	}

	return json.NewDecoder(r.Body).Decode(v)
}

// Validate runs the valid tags of v
func Validate(v interface{}) error {
	_, err := govalidator.ValidateStruct(v)
	return err
}
