//go:build unwrapgen

package main

import (
	"fmt"

	"github.com/sublee/unwrapgen"
)

type Temp interface{ isTemp() }

type (
	Celsius    int8
	Fahrenheit struct{ F float32 }
	Kelvin     struct{ K uint16 }
)

func (*Celsius) isTemp()    {}
func (*Fahrenheit) isTemp() {}
func (Kelvin) isTemp()      {}

var TempAs = unwrapgen.Union[Temp]()

func main() {
	c := Celsius(-40)
	fmt.Println(TempAsCelsius(&c))
	fmt.Println(TempAsCelsius(&Fahrenheit{-40}))
	fmt.Println(TempAsFahrenheit(&Fahrenheit{98.5}))
	fmt.Println(TempAsKelvin(Kelvin{273}))

	// *Kelvin implements Temp too, but it is not a declared variant.
	fmt.Println(TempAsKelvin(&Kelvin{273}))
	fmt.Println(TempAsKelvin(nil))

	// Nil pointers of variants hold no payload.
	fmt.Println(TempAsCelsius((*Celsius)(nil)))
	fmt.Println(TempAsFahrenheit((*Fahrenheit)(nil)))
	fmt.Println(TempAsCelsius((*Fahrenheit)(nil)))
}
