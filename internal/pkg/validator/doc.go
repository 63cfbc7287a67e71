// Package validator defines the input validation contract used by usecases.
//
// The concrete implementation wraps go-playground/validator v10 with English
// translations; failures surface as a field-to-message map keyed in
// snake_case so they can be returned to API clients directly.
package validator
