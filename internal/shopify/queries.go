package shopify

// ProductsQuery fetches the first $first products with up to 5 images and 10
// variants each.
const ProductsQuery = `
query GetProducts($first: Int!) {
  products(first: $first) {
    edges {
      node {
        id
        title
        handle
        description
        images(first: 5) {
          edges {
            node {
              url
              altText
            }
          }
        }
        variants(first: 10) {
          edges {
            node {
              id
              title
              price {
                amount
              }
              availableForSale
            }
          }
        }
      }
    }
  }
}
`

// CheckoutCreateMutation creates a checkout for the given line items.
const CheckoutCreateMutation = `
mutation CreateCheckout($input: CheckoutCreateInput!) {
  checkoutCreate(input: $input) {
    checkout {
      id
      webUrl
      totalPrice {
        amount
      }
      lineItems(first: 250) {
        edges {
          node {
            id
            title
            quantity
          }
        }
      }
    }
    checkoutUserErrors {
      field
      message
    }
  }
}
`
