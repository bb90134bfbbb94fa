package document

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidCPF(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  bool
	}{
		{"formatted valid", "655.898.510-17", true},
		{"digits only valid", "65589851017", true},
		{"another valid", "529.982.247-25", true},
		{"too short", "1234", false},
		{"empty", "", false},
		{"twelve digits", "655898510170", false},
		{"wrong first check digit", "655.898.510-27", false},
		{"wrong second check digit", "655.898.510-18", false},
		{"letters around digits", "CPF 655.898.510-17", true},
		{"repeated ones", "111.111.111-11", true},
		{"repeated zeros", "00000000000", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsValidCPF(tc.input))
		})
	}
}

// verifier computes a CPF check digit as (sum*10 mod 11) mod 10, where the
// weights run from len(digits)+1 down to 2.
func verifier(digits []int) int {
	sum := 0
	for i, d := range digits {
		sum += d * (len(digits) + 1 - i)
	}
	return sum * 10 % 11 % 10
}

func TestIsValidCPF_GeneratedNumbers(t *testing.T) {
	rng := rand.New(rand.NewSource(20240502))

	for n := 0; n < 500; n++ {
		d := make([]int, 9, CPFLength)
		for i := range d {
			d[i] = rng.Intn(10)
		}
		d = append(d, verifier(d))
		d = append(d, verifier(d))

		var b strings.Builder
		for _, v := range d {
			b.WriteByte(byte('0' + v))
		}
		cpf := b.String()

		assert.True(t, IsValidCPF(cpf), cpf)
		assert.True(t, IsValidCPF(Format(cpf)), cpf)
		for _, pos := range []int{9, 10} {
			wrong := []byte(cpf)
			wrong[pos] = byte('0' + (d[pos]+1+rng.Intn(9))%10)
			assert.False(t, IsValidCPF(string(wrong)), fmt.Sprintf("%s with digit %d changed", cpf, pos))
		}
		assert.False(t, IsValidCPF(cpf[:10]), cpf)
		assert.False(t, IsValidCPF(cpf+"0"), cpf)
	}
}

func TestOnlyDigits(t *testing.T) {
	assert.Equal(t, "65589851017", OnlyDigits("655.898.510-17"))
	assert.Equal(t, "11987654321", OnlyDigits("(11) 98765-4321"))
	assert.Equal(t, "", OnlyDigits("abc"))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "655.898.510-17", Format("65589851017"))
	assert.Equal(t, "1234", Format("1234"))
}
