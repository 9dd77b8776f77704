// Package schema loads form definitions from YAML.
//
//	name: signup
//	attrs: {id: signup}
//	children:
//	  - tag: label
//	    children: [{text: Email}]
//	  - field:
//	      name: email
//	      attrs: {type: email}
//	      isRequired: true
//	      isEmail: true
//	      message:
//	        isRequired: Email is required
//	        isEmail: Email is invalid
//
// Rule keys and the message map use the same names as validator.Config.
// Messages keyed by unknown rules are rejected with ErrUnknownRule.
package schema
