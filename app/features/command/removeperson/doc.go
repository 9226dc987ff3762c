// Package removeperson deletes a person that holds no open loans. Their closed loans stay as history.
package removeperson
