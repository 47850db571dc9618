package testlistener_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/graphene/internal/testlistener"
)

func TestIdentityQualifiedName(testInstance *testing.T) {
	testCases := []struct {
		name          string
		identity      testlistener.Identity
		expectedValue string
	}{
		{
			name:          "import_path",
			identity:      testlistener.Identity{Package: "github.com/acme/shop/internal/cart", Name: "TestCheckout"},
			expectedValue: "cart.TestCheckout",
		},
		{
			name:          "single_element_package",
			identity:      testlistener.Identity{Package: "cart", Name: "TestCheckout/empty_cart"},
			expectedValue: "cart.TestCheckout/empty_cart",
		},
		{
			name:          "no_package",
			identity:      testlistener.Identity{Name: "TestCheckout"},
			expectedValue: "TestCheckout",
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(testListenerSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedValue, testCase.identity.QualifiedName())
		})
	}
}

func TestQualifiedNameFromDescription(testInstance *testing.T) {
	testCases := []struct {
		name          string
		description   string
		expectedValue string
	}{
		{
			name:          "fully_qualified_method",
			description:   "org.example.ui.LoginTest.testLogin()",
			expectedValue: "LoginTest.testLogin",
		},
		{
			name:          "method_with_parameters_and_suffix",
			description:   "org.example.ui.LoginTest.testLogin(java.lang.String)[pri:0]",
			expectedValue: "LoginTest.testLogin",
		},
		{
			name:          "unqualified_description",
			description:   "testLogin",
			expectedValue: "testLogin",
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(testListenerSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedValue, testlistener.QualifiedNameFromDescription(testCase.description))
		})
	}
}
