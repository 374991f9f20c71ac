package integration_tests

// geometryTypesHCL declares the hierarchy the built-in behavior modules
// implement: an abstract shape base with circle, rectangle and, one level
// deeper, square.
const geometryTypesHCL = `
	type "shape" {
		attribute "color" {
			type     = string
			optional = true
			default  = "unknown"
		}

		operation "name" {
			required = true
			returns  = string
		}

		operation "area" {
			required = true
			returns  = number
		}

		operation "scale" {
			required = true
			returns  = number

			param "factor" {
				type = number
			}
		}

		operation "describe" {
			returns = string
		}
	}

	type "circle" {
		parent = "shape"

		attribute "radius" {
			type = number
		}
	}

	type "rectangle" {
		parent = "shape"

		attribute "width" {
			type = number
		}

		attribute "height" {
			type = number
		}
	}

	type "square" {
		parent = "rectangle"
	}
`
