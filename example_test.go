package rpncalc_test

import (
	"errors"
	"fmt"

	"github.com/zephyrtronium/rpncalc"
)

func ExampleVariant_Convert() {
	v := rpncalc.Default()
	rpn, err := v.Convert("-2^2 + log 8")
	if err != nil {
		panic(err)
	}
	fmt.Println(rpncalc.FormatRPN(rpn))
	fmt.Println(rpncalc.EvalRPN(rpn))

	// Output:
	// 2 2 ^ neg 8 log +
	// -1 <nil>
}

func ExampleVariant_Validate() {
	v := rpncalc.Basic()
	fmt.Println(v.Validate(" 7 // 2 + 1 "))
	_, err := v.Validate("5!")
	fmt.Println(err, errors.Is(err, rpncalc.ErrInvalidCharacter))

	// Output:
	// integerDivide(7,2)+1 <nil>
	// 2: invalid character '!' true
}

func ExampleEvaluateBig() {
	r, err := rpncalc.EvaluateBig("25!", nil, 128)
	if err != nil {
		panic(err)
	}
	fmt.Println(r.Text('f', 0))

	// Output:
	// 15511210043330985984000000
}
